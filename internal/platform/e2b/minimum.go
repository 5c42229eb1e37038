package e2b

// MinimumCriteria checks the four minimum criteria for a valid case safety
// report: an identifiable patient, an identifiable reporter, at least one
// reaction, and at least one suspect drug. It returns one message per
// unmet criterion; an empty slice means the case is reportable.
func MinimumCriteria(data *CaseData) []string {
	if data == nil {
		data = &CaseData{}
	}
	var problems []string
	if data.PatientInitial.IsZero() && data.PatientAge.IsZero() && data.PatientSex.IsZero() {
		problems = append(problems, "at least one patient identifier required (initials, age, or sex)")
	}
	if data.ReporterGiveName.IsZero() && data.ReporterFamilyName.IsZero() && data.ReporterOrganization.IsZero() {
		problems = append(problems, "at least one reporter identifier required (name or organization)")
	}
	if data.PrimarySourceReaction.IsZero() {
		problems = append(problems, "at least one adverse event/reaction required")
	}
	if data.MedicinalProduct.IsZero() {
		problems = append(problems, "at least one suspect drug required")
	}
	return problems
}
