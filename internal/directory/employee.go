package directory

import (
	"github.com/PuerkitoBio/goquery"
)

// Employee is one directory entry
type Employee struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Room       Room   `json:"room"`
	PageURL    string `json:"page_url"`
	Telephone  string `json:"telephone"`
	Department string `json:"department"`
	JobTitle   string `json:"job_title"`
}

// FullName joins first and last name with a single space
func (e Employee) FullName() string {
	return JoinName(e.FirstName, e.LastName)
}

// SetFullName replaces the name, re-deriving first and last name.
// A nil suffixes slice means DefaultNameSuffixes.
func (e *Employee) SetFullName(fullName string, suffixes []string) {
	e.FirstName, e.LastName = SplitName(fullName, suffixes)
}

// FromFragment builds an Employee from one directory entry. Only the name
// and the page link are required.
func (p Profile) FromFragment(fragment *goquery.Selection) (Employee, error) {
	first, last, err := p.ExtractName(fragment)
	if err != nil {
		return Employee{}, err
	}
	pageURL, err := p.ExtractPageURL(fragment)
	if err != nil {
		return Employee{}, err
	}

	return Employee{
		FirstName:  first,
		LastName:   last,
		Room:       p.ExtractRoom(fragment),
		PageURL:    pageURL,
		Telephone:  p.ExtractTelephone(fragment),
		Department: p.ExtractDepartment(fragment),
		JobTitle:   p.ExtractJobTitle(fragment),
	}, nil
}

// RoomSource is either an already parsed Room or RoomText still to be parsed
type RoomSource interface {
	roomValue() Room
}

// RoomText is a room in its string form
type RoomText string

func (r Room) roomValue() Room     { return r }
func (t RoomText) roomValue() Room { return ParseRoom(string(t)) }

// Row is a flat record: NamedRow or FullNameRow
type Row interface {
	employee(suffixes []string) Employee
}

// NamedRow carries first and last name separately
type NamedRow struct {
	FirstName  string
	LastName   string
	Room       RoomSource
	PageURL    string
	Telephone  string
	Department string
	JobTitle   string
}

// FullNameRow carries a single full name that is split on import
type FullNameRow struct {
	FullName   string
	Room       RoomSource
	PageURL    string
	Telephone  string
	Department string
	JobTitle   string
}

func roomOf(src RoomSource) Room {
	if src == nil {
		return Room{}
	}
	return src.roomValue()
}

func (r NamedRow) employee(_ []string) Employee {
	return Employee{
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		Room:       roomOf(r.Room),
		PageURL:    r.PageURL,
		Telephone:  r.Telephone,
		Department: r.Department,
		JobTitle:   r.JobTitle,
	}
}

func (r FullNameRow) employee(suffixes []string) Employee {
	e := Employee{
		Room:       roomOf(r.Room),
		PageURL:    r.PageURL,
		Telephone:  r.Telephone,
		Department: r.Department,
		JobTitle:   r.JobTitle,
	}
	e.SetFullName(r.FullName, suffixes)
	return e
}

// FromRow builds an Employee from a flat record using the profile's suffixes
func (p Profile) FromRow(row Row) Employee {
	return row.employee(p.suffixes())
}

// FromRow builds an Employee from a flat record using DefaultNameSuffixes
func FromRow(row Row) Employee {
	return row.employee(DefaultNameSuffixes)
}
