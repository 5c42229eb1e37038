package e2b

// Code system identifiers from the ICH ICSR implementation guide and the ISO
// code systems it references.
const (
	OIDReportType          = "2.16.840.1.113883.3.989.2.1.1.2"
	OIDFirstSender         = "2.16.840.1.113883.3.989.2.1.1.3"
	OIDNullification       = "2.16.840.1.113883.3.989.2.1.1.5"
	OIDQualification       = "2.16.840.1.113883.3.989.2.1.1.6"
	OIDSenderType          = "2.16.840.1.113883.3.989.2.1.1.7"
	OIDTermHighlighted     = "2.16.840.1.113883.3.989.2.1.1.10"
	OIDReactionOutcome     = "2.16.840.1.113883.3.989.2.1.1.11"
	OIDTestResult          = "2.16.840.1.113883.3.989.2.1.1.12"
	OIDDrugRole            = "2.16.840.1.113883.3.989.2.1.1.13"
	OIDAdministrationRoute = "2.16.840.1.113883.3.989.2.1.1.14"
	OIDActionDrug          = "2.16.840.1.113883.3.989.2.1.1.15"
	OIDDrugRecurrence      = "2.16.840.1.113883.3.989.2.1.1.16"
	OIDDrugRelatedness     = "2.16.840.1.113883.3.989.2.1.1.17"
	OIDAutopsy             = "2.16.840.1.113883.3.989.2.1.1.18"

	OIDSafetyReportID      = "2.16.840.1.113883.3.989.2.1.3.1"
	OIDWorldwideCaseID     = "2.16.840.1.113883.3.989.2.1.3.2"
	OIDAuthorizationNumber = "2.16.840.1.113883.3.989.2.1.3.4"
	OIDStudyRegistration   = "2.16.840.1.113883.3.989.2.1.3.6"
	OIDSponsorStudyNumber  = "2.16.840.1.113883.3.989.2.1.3.7"
	OIDMedicalRecord       = "2.16.840.1.113883.3.989.2.1.3.8"

	OIDCountry  = "1.0.3166.1.2.2"
	OIDSex      = "1.0.5218"
	OIDLanguage = "1.0.639.2"
	OIDMedDRA   = "2.16.840.1.113883.6.163"
	OIDUCUM     = "2.16.840.1.113883.6.8"

	// IDMP identifier namespaces carried as root attributes.
	RootMPID       = "ISO11615 MPID"
	RootPhPID      = "ISO11616 PhPID"
	RootSubstance  = "ISO11238 IDMP Substance"
	RootDosageForm = "ISO11239 IDMP Dosage Forms"
)

// Two-valued yes/no codes used by the seriousness and autopsy flags.
const (
	CodeYes = "1"
	CodeNo  = "2"
)

// Defaults substituted for mandatory elements when the caller leaves the
// field empty.
const (
	DefaultReportType      = "1" // spontaneous report
	DefaultFirstSender     = "2" // other
	DefaultCountry         = "US"
	DefaultQualification   = "1" // physician
	DefaultSenderType      = "3" // health professional
	DefaultReaction        = "Adverse reaction"
	DefaultReactionOutcome = "5" // unknown
	DefaultDrugRole        = "1" // suspect
	DefaultProduct         = "Unknown Drug"
	DefaultRoute           = "065" // oral
	DefaultActionDrug      = "5" // unknown
	DefaultDrugRecurrence  = "3" // unknown
	DefaultDosageText      = "Not specified"
	DefaultLanguage        = "en"

	DefaultAgeUnit       = "801" // years
	DefaultGestationUnit = "803" // weeks
	DefaultDurationUnit  = "804" // days
	DefaultDoseUnit      = "mg"
	DefaultIntervalUnit  = "h"
	DefaultDrugDuration  = "d"
	DefaultDrugGestation = "wk"
	UnitKilogram         = "kg"
	UnitCentimetre       = "cm"
)

// Transmission identity fallbacks for standalone deployments that have not
// configured sender and receiver routing identifiers.
const (
	DefaultMessageSender   = "E2B-APP"
	DefaultMessageReceiver = "RECEIVER"
	DefaultCompanySegment  = "E2BAPP"
)
