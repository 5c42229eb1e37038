package e2b

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Text is a tolerant scalar used for every CaseData field. Submitted forms
// send a mix of JSON strings, numbers, and booleans for the same fields, so
// Text accepts all of them and keeps the literal textual form (0 decodes to
// "0", not the empty string).
type Text string

func (t Text) String() string { return string(t) }

// IsZero reports whether the field was absent or empty.
func (t Text) IsZero() bool { return t == "" }

func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("e2b: decode text field: %w", err)
		}
		*t = Text(s)
		return nil
	}
	// Numbers and booleans keep their literal form.
	*t = Text(data)
	return nil
}

// CaseData is the full set of case safety report fields a caller may submit.
// Every field is optional; the builder applies the ICH defaults where the
// schema demands a value. JSON tags match the wire names the report form uses.
type CaseData struct {
	// N.2 message header
	MessageIdentifier         Text `json:"messageIdentifier,omitempty"`
	MessageSenderIdentifier   Text `json:"messageSenderIdentifier,omitempty"`
	MessageReceiverIdentifier Text `json:"messageReceiverIdentifier,omitempty"`
	MessageCreationDate       Text `json:"messageCreationDate,omitempty"`
	BatchSenderIdentifier     Text `json:"batchSenderIdentifier,omitempty"`
	BatchReceiverIdentifier   Text `json:"batchReceiverIdentifier,omitempty"`

	// C.1 case identification
	SenderSafetyReportID    Text `json:"senderSafetyReportId,omitempty"`
	DateOfCreation          Text `json:"dateOfCreation,omitempty"`
	TypeOfReport            Text `json:"typeOfReport,omitempty"`
	DateReportFirstReceived Text `json:"dateReportFirstReceived,omitempty"`
	DateReportMostRecent    Text `json:"dateReportMostRecent,omitempty"`
	AdditionalDocuments     Text `json:"additionalDocuments,omitempty"`
	DocumentsHeld           Text `json:"documentsHeld,omitempty"`
	FulfilLocalCriteria     Text `json:"fulfilLocalCriteria,omitempty"`
	WorldwideUniqueID       Text `json:"worldwideUniqueId,omitempty"`
	FirstSender             Text `json:"firstSender,omitempty"`
	NullificationAmendment  Text `json:"nullificationAmendment,omitempty"`
	NullificationReason     Text `json:"nullificationReason,omitempty"`
	PrimarySourceCountry    Text `json:"primarySourceCountry,omitempty"`
	OccurCountry            Text `json:"occurCountry,omitempty"`

	// Report-level seriousness criteria (E.i.3.2); the report "serious" flag
	// is derived from these, never taken from the caller directly.
	SeriousnessDeath           Text `json:"seriousnessDeath,omitempty"`
	SeriousnessLifeThreatening Text `json:"seriousnessLifeThreatening,omitempty"`
	SeriousnessHospitalization Text `json:"seriousnessHospitalization,omitempty"`
	SeriousnessDisabling       Text `json:"seriousnessDisabling,omitempty"`
	// Wire name keeps the historical misspelling for form compatibility.
	SeriousnessCongenitalAnomaly Text `json:"seriousnessCongenitalAnomali,omitempty"`
	SeriousnessOther             Text `json:"seriousnessOther,omitempty"`

	// C.2.r primary source (reporter)
	ReporterTitle           Text `json:"reporterTitle,omitempty"`
	ReporterGiveName        Text `json:"reporterGiveName,omitempty"`
	ReporterFamilyName      Text `json:"reporterFamilyName,omitempty"`
	ReporterOrganization    Text `json:"reporterOrganization,omitempty"`
	ReporterStreet          Text `json:"reporterStreet,omitempty"`
	ReporterCity            Text `json:"reporterCity,omitempty"`
	ReporterState           Text `json:"reporterState,omitempty"`
	ReporterPostcode        Text `json:"reporterPostcode,omitempty"`
	ReporterCountry         Text `json:"reporterCountry,omitempty"`
	ReporterTelephone       Text `json:"reporterTelephone,omitempty"`
	ReporterFax             Text `json:"reporterFax,omitempty"`
	ReporterEmail           Text `json:"reporterEmail,omitempty"`
	ReporterQualification   Text `json:"reporterQualification,omitempty"`
	PrimarySourceRegulatory Text `json:"primarySourceRegulatory,omitempty"`

	// C.3 sender
	SenderType         Text `json:"senderType,omitempty"`
	SenderOrganization Text `json:"senderOrganization,omitempty"`
	PersonResponsible  Text `json:"personResponsible,omitempty"`
	SenderAddress      Text `json:"senderAddress,omitempty"`
	SenderCity         Text `json:"senderCity,omitempty"`
	SenderState        Text `json:"senderState,omitempty"`
	SenderPostcode     Text `json:"senderPostcode,omitempty"`
	SenderCountry      Text `json:"senderCountry,omitempty"`
	SenderTelephone    Text `json:"senderTelephone,omitempty"`
	SenderFax          Text `json:"senderFax,omitempty"`
	SenderEmail        Text `json:"senderEmail,omitempty"`

	// C.4.r literature reference
	LiteratureReference Text `json:"literatureReference,omitempty"`
	IncludedDocuments   Text `json:"includedDocuments,omitempty"`

	// C.5 study identification
	StudyRegistrationNumber  Text `json:"studyRegistrationNumber,omitempty"`
	StudyRegistrationCountry Text `json:"studyRegistrationCountry,omitempty"`
	StudyName                Text `json:"studyName,omitempty"`
	SponsorStudyNumber       Text `json:"sponsorStudyNumber,omitempty"`
	StudyTypeReaction        Text `json:"studyTypeReaction,omitempty"`

	// D patient characteristics
	PatientInitial             Text `json:"patientInitial,omitempty"`
	PatientMedicalRecordNumber Text `json:"patientMedicalRecordNumber,omitempty"`
	PatientBirthdate           Text `json:"patientBirthdate,omitempty"`
	PatientAge                 Text `json:"patientAge,omitempty"`
	PatientAgeUnit             Text `json:"patientAgeUnit,omitempty"`
	GestationPeriod            Text `json:"gestationPeriod,omitempty"`
	GestationPeriodUnit        Text `json:"gestationPeriodUnit,omitempty"`
	PatientAgeGroup            Text `json:"patientAgeGroup,omitempty"`
	PatientWeight              Text `json:"patientWeight,omitempty"`
	PatientHeight              Text `json:"patientHeight,omitempty"`
	PatientSex                 Text `json:"patientSex,omitempty"`
	LastMenstrualDate          Text `json:"lastMenstrualDate,omitempty"`

	// D.7 medical history
	MedicalHistoryText      Text `json:"medicalHistoryText,omitempty"`
	MedicalHistoryMedDRA    Text `json:"medicalHistoryMeddra,omitempty"`
	MedicalHistoryStartDate Text `json:"medicalHistoryStartDate,omitempty"`
	MedicalHistoryEndDate   Text `json:"medicalHistoryEndDate,omitempty"`
	ConcomitantTherapy      Text `json:"concomitantTherapy,omitempty"`

	// D.8 past drug history
	PastDrugName             Text `json:"pastDrugName,omitempty"`
	PastDrugMPID             Text `json:"pastDrugMpid,omitempty"`
	PastDrugPhPID            Text `json:"pastDrugPhpid,omitempty"`
	PastDrugStartDate        Text `json:"pastDrugStartDate,omitempty"`
	PastDrugEndDate          Text `json:"pastDrugEndDate,omitempty"`
	PastDrugIndication       Text `json:"pastDrugIndication,omitempty"`
	PastDrugIndicationMedDRA Text `json:"pastDrugIndicationMeddra,omitempty"`
	PastDrugReaction         Text `json:"pastDrugReaction,omitempty"`
	PastDrugReactionMedDRA   Text `json:"pastDrugReactionMeddra,omitempty"`

	// D.9 death
	DeathDate        Text `json:"deathDate,omitempty"`
	DeathCause       Text `json:"deathCause,omitempty"`
	DeathCauseMedDRA Text `json:"deathCauseMeddra,omitempty"`
	AutopsyDone      Text `json:"autopsyDone,omitempty"`
	AutopsyCause     Text `json:"autopsyCause,omitempty"`

	// D.10 parent (parent-child/foetus reports)
	ParentID             Text `json:"parentId,omitempty"`
	ParentBirthdate      Text `json:"parentBirthdate,omitempty"`
	ParentAge            Text `json:"parentAge,omitempty"`
	ParentAgeUnit        Text `json:"parentAgeUnit,omitempty"`
	ParentMenstrualDate  Text `json:"parentMenstrualDate,omitempty"`
	ParentWeight         Text `json:"parentWeight,omitempty"`
	ParentHeight         Text `json:"parentHeight,omitempty"`
	ParentSex            Text `json:"parentSex,omitempty"`
	ParentMedicalHistory Text `json:"parentMedicalHistory,omitempty"`

	// E.i reaction/event
	PrimarySourceReaction   Text `json:"primarySourceReaction,omitempty"`
	ReactionNativeLanguage  Text `json:"reactionNativeLanguage,omitempty"`
	ReactionTranslation     Text `json:"reactionTranslation,omitempty"`
	ReactionMedDRAPT        Text `json:"reactionMeddrapt,omitempty"`
	ReactionMedDRALLT       Text `json:"reactionMeddrallt,omitempty"`
	TermHighlighted         Text `json:"termHighlighted,omitempty"`
	ReactionStartDate       Text `json:"reactionStartDate,omitempty"`
	ReactionEndDate         Text `json:"reactionEndDate,omitempty"`
	ReactionDuration        Text `json:"reactionDuration,omitempty"`
	ReactionDurationUnit    Text `json:"reactionDurationUnit,omitempty"`
	ReactionOutcome         Text `json:"reactionOutcome,omitempty"`
	MedicalConfirmation     Text `json:"medicalConfirmation,omitempty"`
	ReactionCountry         Text `json:"reactionCountry,omitempty"`

	// F.r test results
	TestName       Text `json:"testName,omitempty"`
	TestDate       Text `json:"testDate,omitempty"`
	TestNameMedDRA Text `json:"testNameMeddra,omitempty"`
	TestResult     Text `json:"testResult,omitempty"`
	TestResultCode Text `json:"testResultCode,omitempty"`
	TestResultVal  Text `json:"testResultValue,omitempty"`
	TestResultUnit Text `json:"testResultUnit,omitempty"`
	TestResultText Text `json:"testResultText,omitempty"`
	TestNormalLow  Text `json:"testNormalLow,omitempty"`
	TestNormalHigh Text `json:"testNormalHigh,omitempty"`
	TestComments   Text `json:"testComments,omitempty"`
	TestMoreInfo   Text `json:"testMoreInfo,omitempty"`

	// G.k drug information
	DrugRole                 Text `json:"drugRole,omitempty"`
	DrugMPID                 Text `json:"drugMpid,omitempty"`
	DrugPhPID                Text `json:"drugPhpid,omitempty"`
	MedicinalProduct         Text `json:"medicinalProduct,omitempty"`
	SubstanceIdentifier      Text `json:"substanceIdentifier,omitempty"`
	SubstanceStrength        Text `json:"substanceStrength,omitempty"`
	SubstanceStrengthUnit    Text `json:"substanceStrengthUnit,omitempty"`
	DrugAuthorizationNumb    Text `json:"drugAuthorizationNumb,omitempty"`
	DrugAuthorizationCountry Text `json:"drugAuthorizationCountry,omitempty"`
	DrugAuthorizationHolder  Text `json:"drugAuthorizationHolder,omitempty"`
	DrugDoseNumber           Text `json:"drugDoseNumber,omitempty"`
	DrugDoseUnit             Text `json:"drugDoseUnit,omitempty"`
	DrugDoseInterval         Text `json:"drugDoseInterval,omitempty"`
	DrugDoseIntervalUnit     Text `json:"drugDoseIntervalUnit,omitempty"`
	DrugStartDate            Text `json:"drugStartDate,omitempty"`
	DrugEndDate              Text `json:"drugEndDate,omitempty"`
	DrugDuration             Text `json:"drugDuration,omitempty"`
	DrugDurationUnit         Text `json:"drugDurationUnit,omitempty"`
	DrugBatchNumb            Text `json:"drugBatchNumb,omitempty"`
	DrugDosageText           Text `json:"drugDosageText,omitempty"`
	DrugDosageForm           Text `json:"drugDosageForm,omitempty"`
	DrugAdministrationRoute  Text `json:"drugAdministrationRoute,omitempty"`
	DrugParentRoute          Text `json:"drugParentRoute,omitempty"`
	DrugCumulativeDose       Text `json:"drugCumulativeDose,omitempty"`
	DrugCumulativeDoseUnit   Text `json:"drugCumulativeDoseUnit,omitempty"`
	DrugGestationPeriod      Text `json:"drugGestationPeriod,omitempty"`
	DrugGestationPeriodUnit  Text `json:"drugGestationPeriodUnit,omitempty"`
	DrugIndication           Text `json:"drugIndication,omitempty"`
	DrugIndicationMedDRA     Text `json:"drugIndicationMeddra,omitempty"`
	ActionDrug               Text `json:"actionDrug,omitempty"`
	DrugReactionAssessed     Text `json:"drugReactionAssessed,omitempty"`
	DrugRelatedness          Text `json:"drugRelatedness,omitempty"`
	DrugReactionInterval     Text `json:"drugReactionInterval,omitempty"`
	DrugReactionIntervalUnit Text `json:"drugReactionIntervalUnit,omitempty"`
	DrugRecurrence           Text `json:"drugRecurrence,omitempty"`
	DrugAdditionalInfo       Text `json:"drugAdditionalInfo,omitempty"`
	DrugAdditionalInfoText   Text `json:"drugAdditionalInfoText,omitempty"`

	// H narrative
	NarrativeText         Text `json:"narrativeText,omitempty"`
	ReporterComments      Text `json:"reporterComments,omitempty"`
	SenderDiagnosis       Text `json:"senderDiagnosis,omitempty"`
	SenderDiagnosisMedDRA Text `json:"senderDiagnosisMeddra,omitempty"`
	SenderComments        Text `json:"senderComments,omitempty"`
	CaseSummaryNative     Text `json:"caseSummaryNative,omitempty"`
	CaseSummaryLanguage   Text `json:"caseSummaryLanguage,omitempty"`
}

// Serious reports whether any of the six seriousness criteria is set to the
// "yes" code. The report-level serious flag is always derived from this.
func (d *CaseData) Serious() bool {
	for _, flag := range []Text{
		d.SeriousnessDeath,
		d.SeriousnessLifeThreatening,
		d.SeriousnessHospitalization,
		d.SeriousnessDisabling,
		d.SeriousnessCongenitalAnomaly,
		d.SeriousnessOther,
	} {
		if flag == CodeYes {
			return true
		}
	}
	return false
}
