package domain

// Option is a selectable value with its display label.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Universities lists the universities a resource can be filed under.
var Universities = []Option{
	{"RGPV", "Rajiv Gandhi Proudyogiki Vishwavidyalaya (RGPV)"},
	{"DAVV", "Devi Ahilya Vishwavidyalaya (DAVV)"},
	{"IITD", "Indian Institute of Technology Delhi (IITD)"},
	{"IITB", "Indian Institute of Technology Bombay (IITB)"},
	{"IIMB", "Indian Institute of Management Bangalore (IIMB)"},
	{"DU", "University of Delhi (DU)"},
	{"JNU", "Jawaharlal Nehru University (JNU)"},
	{"RTMNU", "Rashtrasant Tukdoji Maharaj University (RTMNU)"},
	{"XYZ", "XYZ University"},
}

// Branches lists the engineering branches.
var Branches = []Option{
	{"EC", "Electronics and Communication"},
	{"CS", "Computer Science"},
	{"ME", "Mechanical Engineering"},
	{"CE", "Civil Engineering"},
	{"IT", "Information Technology"},
	{"EE", "Electrical Engineering"},
	{"BT", "Biotechnology"},
	{"AE", "Aerospace Engineering"},
}

// Semesters lists the eight semesters.
var Semesters = []Option{
	{"1st Semester", "1st Semester"},
	{"2nd Semester", "2nd Semester"},
	{"3rd Semester", "3rd Semester"},
	{"4th Semester", "4th Semester"},
	{"5th Semester", "5th Semester"},
	{"6th Semester", "6th Semester"},
	{"7th Semester", "7th Semester"},
	{"8th Semester", "8th Semester"},
}

// Subjects lists the subjects resources can cover.
var Subjects = []Option{
	{"Data Structures", "Data Structures"},
	{"Algorithms", "Algorithms"},
	{"Operating Systems", "Operating Systems"},
	{"Database Systems", "Database Systems"},
	{"Computer Networks", "Computer Networks"},
	{"Software Engineering", "Software Engineering"},
	{"Machine Learning", "Machine Learning"},
	{"Artificial Intelligence", "Artificial Intelligence"},
}

func hasOption(options []Option, value string) bool {
	for _, o := range options {
		if o.Value == value {
			return true
		}
	}
	return false
}

// Label returns the display label for value, or value itself when unknown.
func Label(options []Option, value string) string {
	for _, o := range options {
		if o.Value == value {
			return o.Label
		}
	}
	return value
}
