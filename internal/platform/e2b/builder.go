package e2b

import (
	"fmt"
	"strings"
	"time"
)

// Dialect selects the rendering conventions of the generated ICSR document.
type Dialect string

const (
	// DialectR3 renders the HL7 v3 message form: namespaced root element,
	// identifier elements with root/extension attributes, and true/false
	// boolean attribute values.
	DialectR3 Dialect = "r3"
	// DialectR2 renders the legacy SGML-derived form: a DTD document type
	// declaration, identifiers as element text, and 1/2 boolean codes.
	DialectR2 Dialect = "r2"
)

// ParseDialect maps a configuration string to a Dialect, defaulting to R3.
func ParseDialect(s string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "r3", "e2b(r3)":
		return DialectR3, nil
	case "r2", "e2b(r2)":
		return DialectR2, nil
	}
	return "", fmt.Errorf("e2b: unknown dialect %q", s)
}

// Builder renders individual case safety reports as ICSR XML documents.
// A Builder is immutable and safe for concurrent use.
type Builder struct {
	dialect  Dialect
	sender   string
	receiver string
	company  string
}

// NewBuilder returns a Builder for the given dialect. The sender and
// receiver identifiers are used when the case data carries none; empty
// values fall back to the standalone deployment defaults.
func NewBuilder(dialect Dialect, sender, receiver string) *Builder {
	if dialect == "" {
		dialect = DialectR3
	}
	if sender == "" {
		sender = DefaultMessageSender
	}
	if receiver == "" {
		receiver = DefaultMessageReceiver
	}
	return &Builder{
		dialect:  dialect,
		sender:   sender,
		receiver: receiver,
		company:  DefaultCompanySegment,
	}
}

// Build renders data as a complete ICSR document. Rendering is pure: the
// same data and clock reading always produce the same document. Missing
// mandatory fields receive the standard defaults, optional elements are
// omitted entirely when their field is empty.
func (b *Builder) Build(data *CaseData, now time.Time) string {
	if data == nil {
		data = &CaseData{}
	}
	currentDate := now.Local().Format(dateLayout)
	currentDateTime := now.Local().Format(dateTimeLayout)

	reportID := string(data.SenderSafetyReportID)
	if reportID == "" {
		reportID = NewCaseID(string(data.PrimarySourceCountry), b.company)
	}
	worldwideID := string(data.WorldwideUniqueID)
	if worldwideID == "" {
		worldwideID = reportID
	}

	w := &docWriter{dialect: b.dialect}
	w.raw(`<?xml version="1.0" encoding="UTF-8"?>`)
	if b.dialect == DialectR2 {
		w.raw(`<!DOCTYPE ichicsr SYSTEM "icsr-xml-v2.1.dtd">`)
		w.raw(`<ichicsr lang="en">`)
	} else {
		w.raw(`<ichicsr lang="en" xmlns="urn:hl7-org:v3" xmlns:mif="urn:hl7-org:v3/mif" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">`)
	}
	w.depth++

	b.writeHeader(w, data, reportID, currentDateTime)

	w.open("safetyreport")
	w.ident("safetyreportid", OIDSafetyReportID, reportID)
	w.valueAttr("creationdate", firstNonEmpty(FormatDateTime(data.DateOfCreation), currentDateTime))
	w.coded("reporttype", orDefault(data.TypeOfReport, DefaultReportType), OIDReportType)
	w.valueAttr("firstreceivedate", firstNonEmpty(FormatDate(data.DateReportFirstReceived), currentDate))
	w.valueAttr("mostrecentinfodate", firstNonEmpty(FormatDate(data.DateReportMostRecent), currentDate))
	w.boolAttr("additionaldocument", orDefault(data.AdditionalDocuments, "false"))
	w.text("documentsheld", data.DocumentsHeld)
	w.boolAttr("fulfillexpeditecriteria", orDefault(data.FulfilLocalCriteria, "true"))
	w.ident("worldwideuniquecaseidentification", OIDWorldwideCaseID, worldwideID)
	w.coded("firstsender", orDefault(data.FirstSender, DefaultFirstSender), OIDFirstSender)
	if !data.NullificationAmendment.IsZero() {
		w.coded("nullificationamendment", data.NullificationAmendment, OIDNullification)
	}
	w.text("nullificationreason", data.NullificationReason)
	w.coded("primarysourcecountry", orDefault(data.PrimarySourceCountry, DefaultCountry), OIDCountry)
	if !data.OccurCountry.IsZero() {
		w.coded("occurcountry", data.OccurCountry, OIDCountry)
	}
	w.boolAttr("serious", boolText(data.Serious()))

	b.writePrimarySource(w, data)
	b.writeSender(w, data)

	if !data.LiteratureReference.IsZero() {
		w.open("literaturereference")
		w.text("reference", data.LiteratureReference)
		w.boolAttr("includeddocuments", orDefault(data.IncludedDocuments, "false"))
		w.close("literaturereference")
	}
	b.writeStudy(w, data)

	w.open("patient")
	b.writePatient(w, data)
	b.writeReaction(w, data, currentDate)
	b.writeTest(w, data, currentDate)
	b.writeDrug(w, data, currentDate)
	w.close("patient")

	b.writeNarrative(w, data)

	w.close("safetyreport")
	w.depth--
	w.raw("</ichicsr>")
	return w.sb.String()
}

func (b *Builder) writeHeader(w *docWriter, data *CaseData, reportID, currentDateTime string) {
	w.open("ichicsrmessageheader")
	w.textRaw("messagetype", "ichicsr")
	w.textRaw("messageformatversion", "2.1")
	if b.dialect == DialectR2 {
		w.textRaw("messageformatrelease", "1.1")
	} else {
		w.textRaw("messageformatrelease", "2.0")
	}
	w.text("messagenumb", orDefault(data.MessageIdentifier, reportID))
	w.text("messagesenderidentifier", coalesce(data.MessageSenderIdentifier, data.BatchSenderIdentifier, Text(b.sender)))
	w.text("messagereceiveridentifier", coalesce(data.MessageReceiverIdentifier, data.BatchReceiverIdentifier, Text(b.receiver)))
	w.textRaw("messagedateformat", "102")
	w.textRaw("messagedate", firstNonEmpty(
		FormatDateTime(data.DateOfCreation),
		FormatDateTime(data.MessageCreationDate),
		currentDateTime,
	))
	w.close("ichicsrmessageheader")
}

func (b *Builder) writePrimarySource(w *docWriter, data *CaseData) {
	w.open("primarysource")
	w.text("reportertitle", data.ReporterTitle)
	w.text("reportergivename", data.ReporterGiveName)
	w.text("reporterfamilyname", data.ReporterFamilyName)
	w.text("reporterorganization", data.ReporterOrganization)
	w.text("reporterstreet", data.ReporterStreet)
	w.text("reportercity", data.ReporterCity)
	w.text("reporterstate", data.ReporterState)
	w.text("reporterpostcode", data.ReporterPostcode)
	w.coded("reportercountry", coalesce(data.ReporterCountry, data.PrimarySourceCountry, DefaultCountry), OIDCountry)
	w.text("reportertelephone", data.ReporterTelephone)
	w.text("reporterfax", data.ReporterFax)
	w.text("reporteremail", data.ReporterEmail)
	w.coded("qualification", orDefault(data.ReporterQualification, DefaultQualification), OIDQualification)
	w.boolAttr("primarysourceregulatory", orDefault(data.PrimarySourceRegulatory, "true"))
	w.close("primarysource")
}

func (b *Builder) writeSender(w *docWriter, data *CaseData) {
	w.open("sender")
	w.coded("sendertype", orDefault(data.SenderType, DefaultSenderType), OIDSenderType)
	w.text("senderorganization", data.SenderOrganization)
	w.text("personresponsible", data.PersonResponsible)
	w.text("senderaddress", data.SenderAddress)
	w.text("sendercity", data.SenderCity)
	w.text("senderstate", data.SenderState)
	w.text("senderpostcode", data.SenderPostcode)
	if !data.SenderCountry.IsZero() {
		w.coded("sendercountry", data.SenderCountry, OIDCountry)
	}
	w.text("sendertelephone", data.SenderTelephone)
	w.text("senderfax", data.SenderFax)
	w.text("senderemail", data.SenderEmail)
	w.close("sender")
}

func (b *Builder) writeStudy(w *docWriter, data *CaseData) {
	if data.StudyRegistrationNumber.IsZero() && data.StudyName.IsZero() && data.SponsorStudyNumber.IsZero() {
		return
	}
	w.open("study")
	if !data.StudyRegistrationNumber.IsZero() {
		w.ident("studyregistrationnumber", OIDStudyRegistration, string(data.StudyRegistrationNumber))
	}
	if !data.StudyRegistrationCountry.IsZero() {
		w.coded("studyregistrationcountry", data.StudyRegistrationCountry, OIDCountry)
	}
	w.text("studyname", data.StudyName)
	if !data.SponsorStudyNumber.IsZero() {
		w.ident("sponsorstudynumber", OIDSponsorStudyNumber, string(data.SponsorStudyNumber))
	}
	w.text("studytype", data.StudyTypeReaction)
	w.close("study")
}

func (b *Builder) writePatient(w *docWriter, data *CaseData) {
	w.text("patientinitial", data.PatientInitial)
	if !data.PatientMedicalRecordNumber.IsZero() {
		w.ident("patientmedicalrecordnumber", OIDMedicalRecord, string(data.PatientMedicalRecordNumber))
	}
	w.dateAttr("patientbirthdate", data.PatientBirthdate)
	w.valueUnit("patientage", data.PatientAge, orDefault(data.PatientAgeUnit, DefaultAgeUnit))
	w.valueUnit("gestationperiod", data.GestationPeriod, orDefault(data.GestationPeriodUnit, DefaultGestationUnit))
	w.text("patientagegroup", data.PatientAgeGroup)
	w.valueUnit("patientweight", data.PatientWeight, UnitKilogram)
	w.valueUnit("patientheight", data.PatientHeight, UnitCentimetre)
	if !data.PatientSex.IsZero() {
		w.coded("patientsex", data.PatientSex, OIDSex)
	}
	w.dateAttr("lastmenstrualdate", data.LastMenstrualDate)

	if !data.MedicalHistoryText.IsZero() {
		w.open("medicalhistory")
		w.text("medicalhistorytext", data.MedicalHistoryText)
		if !data.MedicalHistoryMedDRA.IsZero() {
			w.coded("medicalhistorymeddra", data.MedicalHistoryMedDRA, OIDMedDRA)
		}
		w.dateAttr("medicalhistorystartdate", data.MedicalHistoryStartDate)
		w.dateAttr("medicalhistoryenddate", data.MedicalHistoryEndDate)
		w.close("medicalhistory")
	}
	w.text("concomitanttherapy", data.ConcomitantTherapy)

	if !data.PastDrugName.IsZero() {
		w.open("pastdrughistory")
		w.text("pastdrugname", data.PastDrugName)
		if !data.PastDrugMPID.IsZero() {
			w.ident("pastdrugmpid", RootMPID, string(data.PastDrugMPID))
		}
		if !data.PastDrugPhPID.IsZero() {
			w.ident("pastdrugphpid", RootPhPID, string(data.PastDrugPhPID))
		}
		w.dateAttr("pastdrugstartdate", data.PastDrugStartDate)
		w.dateAttr("pastdrugenddate", data.PastDrugEndDate)
		w.text("pastdrugindication", data.PastDrugIndication)
		if !data.PastDrugIndicationMedDRA.IsZero() {
			w.coded("pastdrugindicationmeddra", data.PastDrugIndicationMedDRA, OIDMedDRA)
		}
		w.text("pastdrugreaction", data.PastDrugReaction)
		if !data.PastDrugReactionMedDRA.IsZero() {
			w.coded("pastdrugreactionmeddra", data.PastDrugReactionMedDRA, OIDMedDRA)
		}
		w.close("pastdrughistory")
	}

	if !data.DeathDate.IsZero() {
		w.open("patientdeath")
		w.dateAttr("deathdate", data.DeathDate)
		w.text("deathcause", data.DeathCause)
		if !data.DeathCauseMedDRA.IsZero() {
			w.coded("deathcausemeddra", data.DeathCauseMedDRA, OIDMedDRA)
		}
		if !data.AutopsyDone.IsZero() {
			w.coded("autopsydone", data.AutopsyDone, OIDAutopsy)
		}
		w.text("autopsycause", data.AutopsyCause)
		w.close("patientdeath")
	}

	if !data.ParentID.IsZero() || !data.ParentBirthdate.IsZero() || !data.ParentAge.IsZero() {
		w.open("parent")
		w.text("parentidentification", data.ParentID)
		w.dateAttr("parentbirthdate", data.ParentBirthdate)
		w.valueUnit("parentage", data.ParentAge, orDefault(data.ParentAgeUnit, DefaultAgeUnit))
		w.dateAttr("parentmenstrualdate", data.ParentMenstrualDate)
		w.valueUnit("parentweight", data.ParentWeight, UnitKilogram)
		w.valueUnit("parentheight", data.ParentHeight, UnitCentimetre)
		if !data.ParentSex.IsZero() {
			w.coded("parentsex", data.ParentSex, OIDSex)
		}
		w.text("parentmedicalhistory", data.ParentMedicalHistory)
		w.close("parent")
	}
}

func (b *Builder) writeReaction(w *docWriter, data *CaseData, currentDate string) {
	w.open("reaction")
	w.text("primarysourcereaction", orDefault(data.PrimarySourceReaction, DefaultReaction))
	if !data.ReactionNativeLanguage.IsZero() {
		w.codedText("reactioninnativelanguage", orDefault(data.CaseSummaryLanguage, DefaultLanguage), OIDLanguage, data.ReactionNativeLanguage)
	}
	w.text("reactionfortranslation", data.ReactionTranslation)
	if !data.ReactionMedDRAPT.IsZero() {
		w.coded("reactionmeddrapt", data.ReactionMedDRAPT, OIDMedDRA)
	}
	if !data.ReactionMedDRALLT.IsZero() {
		w.coded("reactionmeddrallt", data.ReactionMedDRALLT, OIDMedDRA)
	}
	if !data.TermHighlighted.IsZero() {
		w.coded("termhighlighted", data.TermHighlighted, OIDTermHighlighted)
	}

	w.open("seriousnesscriteria")
	w.codedBare("seriousnessdeath", orDefault(data.SeriousnessDeath, CodeNo))
	w.codedBare("seriousnesslifethreatening", orDefault(data.SeriousnessLifeThreatening, CodeNo))
	w.codedBare("seriousnesshospitalization", orDefault(data.SeriousnessHospitalization, CodeNo))
	w.codedBare("seriousnessdisabling", orDefault(data.SeriousnessDisabling, CodeNo))
	w.codedBare("seriousnesscongenitalanomaly", orDefault(data.SeriousnessCongenitalAnomaly, CodeNo))
	w.codedBare("seriousnessother", orDefault(data.SeriousnessOther, CodeNo))
	w.close("seriousnesscriteria")

	w.valueAttr("reactionstartdate", firstNonEmpty(FormatDate(data.ReactionStartDate), currentDate))
	w.dateAttr("reactionenddate", data.ReactionEndDate)
	w.valueUnit("reactionduration", data.ReactionDuration, orDefault(data.ReactionDurationUnit, DefaultDurationUnit))
	w.coded("reactionoutcome", orDefault(data.ReactionOutcome, DefaultReactionOutcome), OIDReactionOutcome)
	if !data.MedicalConfirmation.IsZero() {
		w.boolAttr("medicalconfirmation", data.MedicalConfirmation)
	}
	if !data.ReactionCountry.IsZero() {
		w.coded("reactioncountry", data.ReactionCountry, OIDCountry)
	}
	w.close("reaction")
}

func (b *Builder) writeTest(w *docWriter, data *CaseData, currentDate string) {
	if data.TestName.IsZero() {
		return
	}
	w.open("test")
	w.valueAttr("testdate", firstNonEmpty(FormatDate(data.TestDate), currentDate))
	w.text("testname", data.TestName)
	if !data.TestNameMedDRA.IsZero() {
		w.coded("testnamemeddra", data.TestNameMedDRA, OIDMedDRA)
	}
	w.text("testresult", data.TestResult)
	if !data.TestResultCode.IsZero() {
		w.coded("testresultcode", data.TestResultCode, OIDTestResult)
	}
	if !data.TestResultVal.IsZero() {
		w.valueAttr("testresultvalue", EscapeText(data.TestResultVal))
	}
	if !data.TestResultUnit.IsZero() {
		w.coded("testresultunit", data.TestResultUnit, OIDUCUM)
	}
	w.text("testresulttext", data.TestResultText)
	if !data.TestNormalLow.IsZero() {
		w.valueAttr("testnormalrangelow", EscapeText(data.TestNormalLow))
	}
	if !data.TestNormalHigh.IsZero() {
		w.valueAttr("testnormalrangehigh", EscapeText(data.TestNormalHigh))
	}
	w.text("testcomment", data.TestComments)
	if !data.TestMoreInfo.IsZero() {
		w.boolAttr("testmoreinfo", data.TestMoreInfo)
	}
	w.close("test")
}

func (b *Builder) writeDrug(w *docWriter, data *CaseData, currentDate string) {
	w.open("drug")
	w.coded("drugcharacterization", orDefault(data.DrugRole, DefaultDrugRole), OIDDrugRole)
	if !data.DrugMPID.IsZero() {
		w.ident("drugmpid", RootMPID, string(data.DrugMPID))
	}
	if !data.DrugPhPID.IsZero() {
		w.ident("drugphpid", RootPhPID, string(data.DrugPhPID))
	}
	w.text("medicinalproduct", orDefault(data.MedicinalProduct, DefaultProduct))

	if !data.SubstanceIdentifier.IsZero() {
		w.open("activesubstance")
		w.ident("substanceidentifier", RootSubstance, string(data.SubstanceIdentifier))
		w.valueUnit("substancestrength", data.SubstanceStrength, orDefault(data.SubstanceStrengthUnit, DefaultDoseUnit))
		w.close("activesubstance")
	}

	if !data.DrugAuthorizationNumb.IsZero() {
		w.open("drugauthorization")
		w.ident("authorizationnumber", OIDAuthorizationNumber, string(data.DrugAuthorizationNumb))
		if !data.DrugAuthorizationCountry.IsZero() {
			w.coded("authorizationcountry", data.DrugAuthorizationCountry, OIDCountry)
		}
		w.text("authorizationholder", data.DrugAuthorizationHolder)
		w.close("drugauthorization")
	}

	w.open("dosage")
	w.valueUnit("dose", data.DrugDoseNumber, orDefault(data.DrugDoseUnit, DefaultDoseUnit))
	w.valueUnit("dosageinterval", data.DrugDoseInterval, orDefault(data.DrugDoseIntervalUnit, DefaultIntervalUnit))
	w.valueAttr("drugstartdate", firstNonEmpty(FormatDate(data.DrugStartDate), currentDate))
	w.dateAttr("drugenddate", data.DrugEndDate)
	w.valueUnit("drugduration", data.DrugDuration, orDefault(data.DrugDurationUnit, DefaultDrugDuration))
	w.text("batchnumber", data.DrugBatchNumb)
	w.text("dosagetext", orDefault(data.DrugDosageText, DefaultDosageText))
	if !data.DrugDosageForm.IsZero() {
		w.coded("dosageform", data.DrugDosageForm, RootDosageForm)
	}
	w.coded("administrationroute", orDefault(data.DrugAdministrationRoute, DefaultRoute), OIDAdministrationRoute)
	if !data.DrugParentRoute.IsZero() {
		w.coded("parentroute", data.DrugParentRoute, OIDAdministrationRoute)
	}
	w.close("dosage")

	w.valueUnit("cumulativedose", data.DrugCumulativeDose, orDefault(data.DrugCumulativeDoseUnit, DefaultDoseUnit))
	w.valueUnit("gestationperiod", data.DrugGestationPeriod, orDefault(data.DrugGestationPeriodUnit, DefaultDrugGestation))

	if !data.DrugIndication.IsZero() {
		w.open("indication")
		w.text("indicationtext", data.DrugIndication)
		if !data.DrugIndicationMedDRA.IsZero() {
			w.coded("indicationmeddra", data.DrugIndicationMedDRA, OIDMedDRA)
		}
		w.close("indication")
	}

	w.coded("actiondrug", orDefault(data.ActionDrug, DefaultActionDrug), OIDActionDrug)

	w.open("drugreactionmatrix")
	w.text("reactionassessed", data.DrugReactionAssessed)
	if !data.DrugRelatedness.IsZero() {
		w.coded("drugrelatedness", data.DrugRelatedness, OIDDrugRelatedness)
	}
	w.valueUnit("drugreactioninterval", data.DrugReactionInterval, orDefault(data.DrugReactionIntervalUnit, DefaultIntervalUnit))
	w.coded("drugrecurrence", orDefault(data.DrugRecurrence, DefaultDrugRecurrence), OIDDrugRecurrence)
	w.close("drugreactionmatrix")

	if !data.DrugAdditionalInfo.IsZero() {
		w.coded("drugadditionalinfo", data.DrugAdditionalInfo, OIDDrugRelatedness)
	}
	w.text("drugadditionalinfotext", data.DrugAdditionalInfoText)
	w.close("drug")
}

func (b *Builder) writeNarrative(w *docWriter, data *CaseData) {
	w.open("narrative")
	w.text("casenarrativeclinical", data.NarrativeText)
	w.text("reportercomments", data.ReporterComments)
	if !data.SenderDiagnosis.IsZero() {
		w.open("senderdiagnosis")
		w.text("diagnosistext", data.SenderDiagnosis)
		if !data.SenderDiagnosisMedDRA.IsZero() {
			w.coded("diagnosismeddra", data.SenderDiagnosisMedDRA, OIDMedDRA)
		}
		w.close("senderdiagnosis")
	}
	w.text("sendercomments", data.SenderComments)
	if !data.CaseSummaryNative.IsZero() {
		w.open("casesummarynative")
		w.text("casesummarytext", data.CaseSummaryNative)
		w.coded("casesummarylanguage", orDefault(data.CaseSummaryLanguage, DefaultLanguage), OIDLanguage)
		w.close("casesummarynative")
	}
	w.close("narrative")
}

// docWriter accumulates indented element lines for one document.
type docWriter struct {
	sb      strings.Builder
	depth   int
	dialect Dialect
}

func (w *docWriter) raw(line string) {
	w.sb.WriteString(line)
	w.sb.WriteByte('\n')
}

func (w *docWriter) line(s string) {
	for i := 0; i < w.depth; i++ {
		w.sb.WriteString("  ")
	}
	w.sb.WriteString(s)
	w.sb.WriteByte('\n')
}

func (w *docWriter) open(name string) {
	w.line("<" + name + ">")
	w.depth++
}

func (w *docWriter) close(name string) {
	w.depth--
	w.line("</" + name + ">")
}

// text writes a simple element, omitting it entirely when the value is empty.
func (w *docWriter) text(name string, v any) {
	s := EscapeText(v)
	if s == "" {
		return
	}
	w.textRaw(name, s)
}

// textRaw writes a simple element with a value that needs no escaping.
func (w *docWriter) textRaw(name, value string) {
	w.line("<" + name + ">" + value + "</" + name + ">")
}

// valueAttr writes <name value="..."/>, omitted when the value is empty.
// The value must already be escaped.
func (w *docWriter) valueAttr(name, value string) {
	if value == "" {
		return
	}
	w.line(`<` + name + ` value="` + value + `"/>`)
}

// dateAttr writes a value attribute holding a formatted date, omitted when
// the input does not parse.
func (w *docWriter) dateAttr(name string, v any) {
	w.valueAttr(name, FormatDate(v))
}

// valueUnit writes <name value="..." unit="..."/>, omitted when the value
// is empty.
func (w *docWriter) valueUnit(name string, v any, unit any) {
	s := EscapeText(v)
	if s == "" {
		return
	}
	w.line(`<` + name + ` value="` + s + `" unit="` + EscapeText(unit) + `"/>`)
}

// coded writes <name code="..." codeSystem="..."/>.
func (w *docWriter) coded(name string, code any, system string) {
	w.line(`<` + name + ` code="` + EscapeText(code) + `" codeSystem="` + system + `"/>`)
}

// codedBare writes <name code="..."/> with no code system.
func (w *docWriter) codedBare(name string, code any) {
	w.line(`<` + name + ` code="` + EscapeText(code) + `"/>`)
}

// codedText writes a coded element that also carries text content.
func (w *docWriter) codedText(name string, code any, system string, v any) {
	w.line(`<` + name + ` code="` + EscapeText(code) + `" codeSystem="` + system + `">` + EscapeText(v) + `</` + name + `>`)
}

// ident writes an identifier element. The R3 form carries the namespace and
// value as root/extension attributes; the R2 form carries the value as text.
func (w *docWriter) ident(name, root, value string) {
	if w.dialect == DialectR2 {
		w.textRaw(name, EscapeText(value))
		return
	}
	w.line(`<` + name + ` root="` + root + `" extension="` + EscapeText(value) + `"/>`)
}

// boolAttr writes a boolean flag. The R3 form is a true/false value
// attribute; the R2 form is a 1/2 code in element text.
func (w *docWriter) boolAttr(name string, v any) {
	s := EscapeText(v)
	if s == "" {
		return
	}
	if w.dialect == DialectR2 {
		switch s {
		case "true":
			s = CodeYes
		case "false":
			s = CodeNo
		}
		w.textRaw(name, s)
		return
	}
	w.line(`<` + name + ` value="` + s + `"/>`)
}

func boolText(v bool) string {
	if v {
		return "true"
	}
	return "false"
}

func orDefault(v Text, def string) Text {
	if v.IsZero() {
		return Text(def)
	}
	return v
}

func coalesce(vals ...Text) Text {
	for _, v := range vals {
		if !v.IsZero() {
			return v
		}
	}
	return ""
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
