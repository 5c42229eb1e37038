package e2b

import (
	"encoding/xml"
	"io"
	"strings"
	"testing"
	"time"
)

var testNow = time.Date(2024, 5, 6, 12, 30, 0, 0, time.Local)

func mustParse(t *testing.T, doc string) {
	t.Helper()
	dec := xml.NewDecoder(strings.NewReader(doc))
	for {
		_, err := dec.Token()
		if err == io.EOF {
			return
		}
		if err != nil {
			t.Fatalf("document is not well formed: %v", err)
		}
	}
}

func TestBuildWellFormed(t *testing.T) {
	b := NewBuilder(DialectR3, "", "")
	data := &CaseData{
		SenderSafetyReportID:  "US-ACME-1",
		PatientInitial:        "JD",
		PatientAge:            "34",
		PatientSex:            "1",
		ReporterFamilyName:    "Smith",
		PrimarySourceReaction: "Headache",
		MedicinalProduct:      "Aspirin",
		NarrativeText:         `Patient took 2 x 500mg & reported "severe" pain <resolved>`,
		TestName:              "Blood pressure",
		DeathDate:             "2024-01-02",
		StudyName:             "ASP-01",
		LiteratureReference:   "Smith et al, 2023",
		ParentAge:             "60",
	}
	mustParse(t, b.Build(data, testNow))
}

func TestBuildDefaults(t *testing.T) {
	doc := NewBuilder(DialectR3, "", "").Build(&CaseData{}, testNow)
	mustParse(t, doc)

	for _, want := range []string{
		`<reporttype code="1" codeSystem="` + OIDReportType + `"/>`,
		`<firstsender code="2" codeSystem="` + OIDFirstSender + `"/>`,
		`<primarysourcecountry code="US" codeSystem="` + OIDCountry + `"/>`,
		`<qualification code="1" codeSystem="` + OIDQualification + `"/>`,
		`<sendertype code="3" codeSystem="` + OIDSenderType + `"/>`,
		`<messagesenderidentifier>E2B-APP</messagesenderidentifier>`,
		`<messagereceiveridentifier>RECEIVER</messagereceiveridentifier>`,
		`<primarysourcereaction>Adverse reaction</primarysourcereaction>`,
		`<reactionoutcome code="5" codeSystem="` + OIDReactionOutcome + `"/>`,
		`<medicinalproduct>Unknown Drug</medicinalproduct>`,
		`<drugcharacterization code="1" codeSystem="` + OIDDrugRole + `"/>`,
		`<administrationroute code="065" codeSystem="` + OIDAdministrationRoute + `"/>`,
		`<actiondrug code="5" codeSystem="` + OIDActionDrug + `"/>`,
		`<drugrecurrence code="3" codeSystem="` + OIDDrugRecurrence + `"/>`,
		`<dosagetext>Not specified</dosagetext>`,
		`<additionaldocument value="false"/>`,
		`<fulfillexpeditecriteria value="true"/>`,
		`<serious value="false"/>`,
		`<seriousnessdeath code="2"/>`,
		`<seriousnessother code="2"/>`,
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %s", want)
		}
	}
}

func TestBuildDateFallbacks(t *testing.T) {
	doc := NewBuilder(DialectR3, "", "").Build(&CaseData{}, testNow)
	date := testNow.Format("20060102")
	dateTime := testNow.Format("20060102150405")

	for _, want := range []string{
		`<messagedate>` + dateTime + `</messagedate>`,
		`<creationdate value="` + dateTime + `"/>`,
		`<firstreceivedate value="` + date + `"/>`,
		`<mostrecentinfodate value="` + date + `"/>`,
		`<reactionstartdate value="` + date + `"/>`,
		`<drugstartdate value="` + date + `"/>`,
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %s", want)
		}
	}
}

func TestBuildSeriousDerived(t *testing.T) {
	tests := []struct {
		name string
		data CaseData
		want string
	}{
		{"no criteria", CaseData{}, `<serious value="false"/>`},
		{"death", CaseData{SeriousnessDeath: "1"}, `<serious value="true"/>`},
		{"hospitalization", CaseData{SeriousnessHospitalization: "1"}, `<serious value="true"/>`},
		{"criteria set to no", CaseData{SeriousnessDeath: "2", SeriousnessOther: "2"}, `<serious value="false"/>`},
	}
	b := NewBuilder(DialectR3, "", "")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := b.Build(&tt.data, testNow)
			if !strings.Contains(doc, tt.want) {
				t.Errorf("document missing %s", tt.want)
			}
		})
	}
}

func TestBuildOmitsEmptyOptionals(t *testing.T) {
	doc := NewBuilder(DialectR3, "", "").Build(&CaseData{}, testNow)

	for _, absent := range []string{
		"<occurcountry",
		"<documentsheld",
		"<nullificationamendment",
		"<study>",
		"<test>",
		"<patientdeath>",
		"<parent>",
		"<medicalhistory>",
		"<pastdrughistory>",
		"<literaturereference>",
		"<casesummarynative>",
		"<senderdiagnosis>",
		"<reportertitle",
		"<patientinitial",
	} {
		if strings.Contains(doc, absent) {
			t.Errorf("document unexpectedly contains %s", absent)
		}
	}
}

func TestBuildEscapesContent(t *testing.T) {
	data := &CaseData{
		NarrativeText:    `<script>alert("x")</script> & more`,
		MedicinalProduct: `Bob's "Aspirin" <forte>`,
	}
	doc := NewBuilder(DialectR3, "", "").Build(data, testNow)
	mustParse(t, doc)

	if strings.Contains(doc, "<script>") {
		t.Error("raw markup leaked into document")
	}
	if !strings.Contains(doc, "&lt;script&gt;alert(&quot;x&quot;)&lt;/script&gt; &amp; more") {
		t.Error("narrative was not escaped")
	}
	if !strings.Contains(doc, "<medicinalproduct>Bob&apos;s &quot;Aspirin&quot; &lt;forte&gt;</medicinalproduct>") {
		t.Error("product name was not escaped")
	}
}

func TestBuildDeterministic(t *testing.T) {
	data := &CaseData{
		SenderSafetyReportID:  "US-ACME-42",
		PatientInitial:        "JD",
		PrimarySourceReaction: "Headache",
		MedicinalProduct:      "Aspirin",
	}
	b := NewBuilder(DialectR3, "", "")
	if a, c := b.Build(data, testNow), b.Build(data, testNow); a != c {
		t.Error("identical input produced different documents")
	}
}

func TestBuildDerivesReportID(t *testing.T) {
	data := &CaseData{PrimarySourceCountry: "fr"}
	doc := NewBuilder(DialectR3, "", "").Build(data, testNow)

	if !strings.Contains(doc, `extension="FR-E2BAPP-`) {
		t.Error("derived report id not rendered with uppercased country")
	}
	// The derived id doubles as the worldwide case id and message number.
	start := strings.Index(doc, `<safetyreportid root="`+OIDSafetyReportID+`" extension="`)
	if start < 0 {
		t.Fatal("safetyreportid element missing")
	}
	rest := doc[start+len(`<safetyreportid root="`+OIDSafetyReportID+`" extension="`):]
	id := rest[:strings.Index(rest, `"`)]
	if !strings.Contains(doc, `<messagenumb>`+id+`</messagenumb>`) {
		t.Error("message number does not reuse derived report id")
	}
	if !strings.Contains(doc, `<worldwideuniquecaseidentification root="`+OIDWorldwideCaseID+`" extension="`+id+`"/>`) {
		t.Error("worldwide case id does not reuse derived report id")
	}
}

func TestBuildDialectR2(t *testing.T) {
	data := &CaseData{SenderSafetyReportID: "US-ACME-7"}
	doc := NewBuilder(DialectR2, "", "").Build(data, testNow)
	mustParse(t, doc)

	if !strings.Contains(doc, `<!DOCTYPE ichicsr SYSTEM "icsr-xml-v2.1.dtd">`) {
		t.Error("missing document type declaration")
	}
	if strings.Contains(doc, "urn:hl7-org:v3") {
		t.Error("legacy document should not carry the v3 namespace")
	}
	if !strings.Contains(doc, `<safetyreportid>US-ACME-7</safetyreportid>`) {
		t.Error("identifier should render as element text")
	}
	if !strings.Contains(doc, `<fulfillexpeditecriteria>1</fulfillexpeditecriteria>`) {
		t.Error("boolean should render as a 1/2 code")
	}
	if !strings.Contains(doc, `<additionaldocument>2</additionaldocument>`) {
		t.Error("false boolean should render as code 2")
	}
}

func TestBuildAspirinHeadacheScenario(t *testing.T) {
	data := &CaseData{
		SenderSafetyReportID:       "US-ACME-2024-0001",
		PatientInitial:             "JD",
		PatientAge:                 "34",
		PatientSex:                 "1",
		ReporterGiveName:           "Jane",
		ReporterFamilyName:         "Doe",
		ReporterCountry:            "US",
		PrimarySourceReaction:      "Headache",
		ReactionMedDRAPT:           "10019211",
		ReactionStartDate:          "2024-03-01",
		ReactionOutcome:            "1",
		SeriousnessHospitalization: "1",
		MedicinalProduct:           "Aspirin",
		DrugDoseNumber:             "500",
		DrugDosageText:             "500 mg twice daily",
		DrugIndication:             "Pain relief",
		NarrativeText:              "Patient developed a headache after taking Aspirin.",
	}
	doc := NewBuilder(DialectR3, "ACME-PHARMA", "FDA").Build(data, testNow)
	mustParse(t, doc)

	for _, want := range []string{
		`<messagesenderidentifier>ACME-PHARMA</messagesenderidentifier>`,
		`<messagereceiveridentifier>FDA</messagereceiveridentifier>`,
		`<safetyreportid root="` + OIDSafetyReportID + `" extension="US-ACME-2024-0001"/>`,
		`<serious value="true"/>`,
		`<seriousnesshospitalization code="1"/>`,
		`<patientinitial>JD</patientinitial>`,
		`<patientage value="34" unit="801"/>`,
		`<primarysourcereaction>Headache</primarysourcereaction>`,
		`<reactionmeddrapt code="10019211" codeSystem="` + OIDMedDRA + `"/>`,
		`<reactionstartdate value="20240301"/>`,
		`<reactionoutcome code="1" codeSystem="` + OIDReactionOutcome + `"/>`,
		`<medicinalproduct>Aspirin</medicinalproduct>`,
		`<dose value="500" unit="mg"/>`,
		`<dosagetext>500 mg twice daily</dosagetext>`,
		`<indicationtext>Pain relief</indicationtext>`,
		`<casenarrativeclinical>Patient developed a headache after taking Aspirin.</casenarrativeclinical>`,
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %s", want)
		}
	}

	if problems := MinimumCriteria(data); len(problems) != 0 {
		t.Errorf("scenario should satisfy minimum criteria, got %v", problems)
	}
}

func TestParseDialect(t *testing.T) {
	tests := []struct {
		input   string
		want    Dialect
		wantErr bool
	}{
		{"", DialectR3, false},
		{"r3", DialectR3, false},
		{"R3", DialectR3, false},
		{"e2b(r3)", DialectR3, false},
		{"r2", DialectR2, false},
		{"E2B(R2)", DialectR2, false},
		{"r4", "", true},
	}
	for _, tt := range tests {
		got, err := ParseDialect(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDialect(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDialect(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
