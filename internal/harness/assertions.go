package harness

import "fmt"

// checkExpectation validates one query outcome against its step's
// expectation, accumulating failures into the result.
func checkExpectation(result *Result, step QueryStep, qr QueryResult) {
	exp := step.Expect
	if exp == nil {
		return
	}

	if exp.Error != "" {
		if qr.Error != exp.Error {
			result.AddError(fmt.Sprintf("%s: expected error %s, got %q (rows: %d)",
				step.Name, exp.Error, qr.Error, len(qr.Records)))
		}
		return
	}
	if qr.Error != "" {
		result.AddError(fmt.Sprintf("%s: unexpected error %s", step.Name, qr.Error))
		return
	}

	if exp.Count != nil && len(qr.Records) != *exp.Count {
		result.AddError(fmt.Sprintf("%s: expected %d rows, got %d",
			step.Name, *exp.Count, len(qr.Records)))
	}

	if len(exp.IDs) > 0 {
		if len(exp.IDs) != len(qr.Records) {
			result.AddError(fmt.Sprintf("%s: expected %d row ids, got %d rows",
				step.Name, len(exp.IDs), len(qr.Records)))
			return
		}
		for i, want := range exp.IDs {
			got := qr.Records[i].ID.String()
			if got != want {
				result.AddError(fmt.Sprintf("%s: row %d id %s, want %s",
					step.Name, i, got, want))
			}
		}
	}
}
