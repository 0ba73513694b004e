package model

// Section tags a question with the legislation it belongs to. The set is
// closed; tallies are only ever keyed by one of these values.
type Section string

const (
	SectionCivilCode                   Section = "civil_code"
	SectionCivilProcessCode            Section = "civil_process_code"
	SectionCriminalCode                Section = "criminal_code"
	SectionCriminalProcessCode         Section = "criminal_process_code"
	SectionAdministrativeOffensesCode  Section = "administrative_offenses_code"
	SectionAntiCorruptionLaw           Section = "anti_corruption_law"
	SectionAdministrativeProcedureCode Section = "administrative_procedure_code"
	SectionAdvocacyLaw                 Section = "advocacy_law"
	SectionAMLLaw                      Section = "aml_law"
)

// allSections fixes the listing order of /legislation-sections.
var allSections = []Section{
	SectionCivilCode,
	SectionCivilProcessCode,
	SectionCriminalCode,
	SectionCriminalProcessCode,
	SectionAdministrativeOffensesCode,
	SectionAntiCorruptionLaw,
	SectionAdministrativeProcedureCode,
	SectionAdvocacyLaw,
	SectionAMLLaw,
}

var sectionNames = map[Section]LocalizedText{
	SectionCivilCode: {
		Kz: "Азаматтық кодекс",
		Ru: "Гражданский кодекс",
	},
	SectionCivilProcessCode: {
		Kz: "Азаматтық процестік кодекс",
		Ru: "Гражданский процессуальный кодекс",
	},
	SectionCriminalCode: {
		Kz: "Қылмыстық кодекс",
		Ru: "Уголовный кодекс",
	},
	SectionCriminalProcessCode: {
		Kz: "Қылмыстық процестік кодекс",
		Ru: "Уголовно процессуальный кодекс",
	},
	SectionAdministrativeOffensesCode: {
		Kz: "Әкімшілік құқықбұзушылықтар туралы кодекс",
		Ru: "Кодекс об административных правонарушениях",
	},
	SectionAntiCorruptionLaw: {
		Kz: "Коррупцияға қарсы күрес туралы заң",
		Ru: "Закон \"О противодействии коррупции\"",
	},
	SectionAdministrativeProcedureCode: {
		Kz: "Әкімшілік процедуралық-процестік кодекс",
		Ru: "Административный процедурно-процессуальный кодекс",
	},
	SectionAdvocacyLaw: {
		Kz: "Адвокаттық қызмет және заңды көмек туралы заң",
		Ru: "Закон \"Об адвокатской деятельности и юридической помощи\"",
	},
	SectionAMLLaw: {
		Kz: "Қылмыстық жолмен алынған кірістерді легализациялауға (ақтауға) қарсы күрес және терроризмді қаржыландыруға қарсы күрес туралы заң",
		Ru: "Закон \"О противодействии легализации (отмыванию) доходов, полученных преступным путем, и финансированию терроризма\"",
	},
}

func (s Section) Valid() bool {
	_, ok := sectionNames[s]
	return ok
}

// Name returns the bilingual display name, or zero values for an unknown tag.
func (s Section) Name() LocalizedText {
	return sectionNames[s]
}

func AllSections() []Section {
	return allSections
}

// SectionInfo is the /legislation-sections list item.
type SectionInfo struct {
	ID   string        `json:"id"`
	Name LocalizedText `json:"name"`
}

func SectionList() []SectionInfo {
	list := make([]SectionInfo, 0, len(allSections))
	for _, s := range allSections {
		list = append(list, SectionInfo{ID: string(s), Name: s.Name()})
	}
	return list
}
