// Package harness runs declarative query-conformance scenarios.
//
// A scenario seeds a store with fixture records, pins the clock, runs
// query markup against the engine and checks the outcomes. Scenarios
// are YAML:
//
//	name: like_patterns
//	description: "wildcard matching over account names"
//	metadata_source: |
//	  entity: account: {
//	    primary_id: "accountid"
//	    attributes: {
//	      accountid: {type: "uniqueid"}
//	      name:      {type: "string"}
//	    }
//	  }
//	now: "2024-03-15T10:30:00Z"
//	timezone: UTC
//	fixtures:
//	  - entity: account
//	    attributes:
//	      name: test
//	queries:
//	  - name: te_t
//	    fetch: |
//	      <fetch>
//	        <entity name="account">
//	          <attribute name="name" />
//	          <filter>
//	            <condition attribute="name" operator="like" value="te_t" />
//	          </filter>
//	        </entity>
//	      </fetch>
//	    expect:
//	      count: 1
//
// Fixture attribute values may be plain YAML scalars (string, integer,
// float, bool map onto the matching attribute value types) or a typed
// single-key map such as {date: "2024-03-01T09:00:00Z"}, {option: 2},
// {money: 100.5}, {ref: {entity: contact, id: ...}} or {null: true}.
//
// Golden runs serialize every query's result set to canonical JSON and
// compare against testdata/golden/{name}.golden via goldie; -update
// regenerates.
package harness
