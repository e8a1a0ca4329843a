package directory

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"sjsage522/dirscraper/helpers"
	apperrors "sjsage522/dirscraper/pkg/errors"
)

// resolve applies the selector to a fragment. found is false when the
// element, its target, or the requested attribute is absent.
func (s Selector) resolve(fragment *goquery.Selection) (value string, found bool) {
	if s.IsZero() {
		return "", false
	}
	el := fragment.Find(s.Query).First()
	if el.Length() == 0 {
		return "", false
	}
	if s.Target != "" {
		el = el.Find(s.Target).First()
		if el.Length() == 0 {
			return "", false
		}
	}
	if s.Attr != "" {
		return el.Attr(s.Attr)
	}
	return el.Text(), true
}

// ExtractFullName returns the employee name with non-breaking spaces
// normalized. It fails when the name element is absent.
func (p Profile) ExtractFullName(fragment *goquery.Selection) (string, error) {
	value, ok := p.Selectors.FullName.resolve(fragment)
	if !ok {
		return "", apperrors.NewExtraction("full_name", "name element not found")
	}
	return strings.TrimSpace(helpers.ReplaceNBSP(value)), nil
}

// ExtractName returns the first and last name
func (p Profile) ExtractName(fragment *goquery.Selection) (first, last string, err error) {
	fullName, err := p.ExtractFullName(fragment)
	if err != nil {
		return "", "", err
	}
	first, last = SplitName(fullName, p.suffixes())
	return first, last, nil
}

// ExtractRoom returns the parsed room, or the empty Room when absent or unreadable
func (p Profile) ExtractRoom(fragment *goquery.Selection) Room {
	value, ok := p.Selectors.Room.resolve(fragment)
	if !ok {
		return Room{}
	}
	return ParseRoom(value)
}

// ExtractPageURL returns the link to the employee page. It fails when the
// link or its href is absent.
func (p Profile) ExtractPageURL(fragment *goquery.Selection) (string, error) {
	value, ok := p.Selectors.PageURL.resolve(fragment)
	if !ok {
		return "", apperrors.NewExtraction("page_url", "page link not found")
	}
	return strings.TrimSpace(value), nil
}

// ExtractTelephone returns the phone number without its tel: scheme
func (p Profile) ExtractTelephone(fragment *goquery.Selection) string {
	value, ok := p.Selectors.Telephone.resolve(fragment)
	if !ok {
		return ""
	}
	return helpers.RemovePrefix(strings.TrimSpace(value), "tel:")
}

func (p Profile) ExtractDepartment(fragment *goquery.Selection) string {
	value, _ := p.Selectors.Department.resolve(fragment)
	return strings.TrimSpace(value)
}

func (p Profile) ExtractJobTitle(fragment *goquery.Selection) string {
	value, _ := p.Selectors.JobTitle.resolve(fragment)
	return strings.TrimSpace(value)
}
