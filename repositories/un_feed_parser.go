package repositories

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/clearlist/screener-backend/models"
)

// UnFeedParser reads the UN Security Council consolidated list: INDIVIDUAL
// elements carry up to four name parts, ENTITY elements a single name.
type UnFeedParser struct{}

type unIndividual struct {
	DataId     string `xml:"DATAID"`
	FirstName  string `xml:"FIRST_NAME"`
	SecondName string `xml:"SECOND_NAME"`
	ThirdName  string `xml:"THIRD_NAME"`
	FourthName string `xml:"FOURTH_NAME"`
	Aliases    []struct {
		AliasName string `xml:"ALIAS_NAME"`
		Quality   string `xml:"QUALITY"`
	} `xml:"INDIVIDUAL_ALIAS"`
	Nationalities []string `xml:"NATIONALITY>VALUE"`
	DateOfBirth   struct {
		Date string `xml:"DATE"`
		Year string `xml:"YEAR"`
	} `xml:"INDIVIDUAL_DATE_OF_BIRTH"`
	PlaceOfBirth struct {
		City    string `xml:"CITY"`
		Country string `xml:"COUNTRY"`
	} `xml:"INDIVIDUAL_PLACE_OF_BIRTH"`
	Documents []struct {
		TypeOfDocument string `xml:"TYPE_OF_DOCUMENT"`
		Number         string `xml:"NUMBER"`
		IssuingCountry string `xml:"ISSUING_COUNTRY"`
	} `xml:"INDIVIDUAL_DOCUMENT"`
	Addresses []struct {
		Street  string `xml:"STREET"`
		City    string `xml:"CITY"`
		Country string `xml:"COUNTRY"`
	} `xml:"INDIVIDUAL_ADDRESS"`
	ListType []string `xml:"UN_LIST_TYPE"`
}

type unEntity struct {
	DataId    string `xml:"DATAID"`
	FirstName string `xml:"FIRST_NAME"`
	Aliases   []struct {
		AliasName string `xml:"ALIAS_NAME"`
		Quality   string `xml:"QUALITY"`
	} `xml:"ENTITY_ALIAS"`
	Addresses []struct {
		Street  string `xml:"STREET"`
		City    string `xml:"CITY"`
		Country string `xml:"COUNTRY"`
	} `xml:"ENTITY_ADDRESS"`
	ListType []string `xml:"UN_LIST_TYPE"`
}

func (UnFeedParser) Parse(ctx context.Context, r io.Reader, sink RecordSink) (models.FeedValidation, error) {
	var validation models.FeedValidation

	dec := newHardenedDecoder(r)
	index := 0

	for {
		if err := ctx.Err(); err != nil {
			return validation, err
		}

		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return validation, errors.WithDetail(
				errors.Wrap(models.FeedParseError, err.Error()),
				"UN consolidated list document is not well-formed")
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		switch start.Name.Local {
		case "INDIVIDUAL":
			index++
			var raw unIndividual
			if err := dec.DecodeElement(&raw, &start); err != nil {
				validation.Skip(fmt.Sprintf("individual %d: %v", index, err))
				continue
			}
			record, ok := adaptUnIndividual(raw)
			if !ok {
				validation.Skip(fmt.Sprintf("individual %d (id %q): no usable name or id", index, raw.DataId))
				continue
			}
			if err := sink(record); err != nil {
				return validation, err
			}

		case "ENTITY":
			index++
			var raw unEntity
			if err := dec.DecodeElement(&raw, &start); err != nil {
				validation.Skip(fmt.Sprintf("entity %d: %v", index, err))
				continue
			}
			record, ok := adaptUnEntity(raw)
			if !ok {
				validation.Skip(fmt.Sprintf("entity %d (id %q): no usable name or id", index, raw.DataId))
				continue
			}
			if err := sink(record); err != nil {
				return validation, err
			}
		}
	}

	return validation, nil
}

func adaptUnIndividual(raw unIndividual) (models.RawRecord, bool) {
	id := strings.TrimSpace(raw.DataId)
	if id == "" {
		return models.RawRecord{}, false
	}

	parts := trimAll([]string{raw.FirstName, raw.SecondName, raw.ThirdName, raw.FourthName})
	if len(parts) == 0 {
		return models.RawRecord{}, false
	}

	record := models.RawRecord{
		ExternalId:  id,
		Kind:        "individual",
		PrimaryName: strings.Join(parts, " "),
		FirstName:   strings.TrimSpace(raw.FirstName),
		Programs:    unPrograms(raw.ListType),
	}
	if len(parts) > 1 {
		record.LastName = parts[len(parts)-1]
	}

	for _, alias := range raw.Aliases {
		if name := strings.TrimSpace(alias.AliasName); name != "" {
			record.Aliases = append(record.Aliases, models.RawAlias{
				Name:    name,
				Quality: strings.TrimSpace(alias.Quality),
			})
		}
	}

	if date := strings.TrimSpace(raw.DateOfBirth.Date); date != "" {
		record.DateOfBirth = date
	} else {
		record.DateOfBirth = strings.TrimSpace(raw.DateOfBirth.Year)
	}
	if city, country := strings.TrimSpace(raw.PlaceOfBirth.City), strings.TrimSpace(raw.PlaceOfBirth.Country); city != "" || country != "" {
		record.PlaceOfBirth = strings.TrimSpace(strings.Join(trimAll([]string{city, country}), ", "))
	}
	if len(raw.Nationalities) > 0 {
		record.Nationality = strings.TrimSpace(raw.Nationalities[0])
	}

	for _, doc := range raw.Documents {
		if number := strings.TrimSpace(doc.Number); number != "" {
			record.Documents = append(record.Documents, models.RawDocument{
				Type:           strings.TrimSpace(doc.TypeOfDocument),
				Number:         number,
				IssuingCountry: strings.TrimSpace(doc.IssuingCountry),
			})
		}
	}

	for _, addr := range raw.Addresses {
		record.Addresses = appendUnAddress(record.Addresses, addr.Street, addr.City, addr.Country)
	}

	return record, true
}

func adaptUnEntity(raw unEntity) (models.RawRecord, bool) {
	id := strings.TrimSpace(raw.DataId)
	name := strings.TrimSpace(raw.FirstName)
	if id == "" || name == "" {
		return models.RawRecord{}, false
	}

	record := models.RawRecord{
		ExternalId:  id,
		Kind:        "entity",
		PrimaryName: name,
		Programs:    unPrograms(raw.ListType),
	}

	for _, alias := range raw.Aliases {
		if aliasName := strings.TrimSpace(alias.AliasName); aliasName != "" {
			record.Aliases = append(record.Aliases, models.RawAlias{
				Name:    aliasName,
				Quality: strings.TrimSpace(alias.Quality),
			})
		}
	}

	for _, addr := range raw.Addresses {
		record.Addresses = appendUnAddress(record.Addresses, addr.Street, addr.City, addr.Country)
	}

	return record, true
}

func appendUnAddress(addresses []models.RawAddress, street, city, country string) []models.RawAddress {
	street, city, country = strings.TrimSpace(street), strings.TrimSpace(city), strings.TrimSpace(country)
	if street == "" && city == "" && country == "" {
		return addresses
	}
	return append(addresses, models.RawAddress{Line: street, City: city, Country: country})
}

func unPrograms(listTypes []string) []string {
	programs := trimAll(listTypes)
	if len(programs) == 0 {
		programs = []string{"UN"}
	}
	return programs
}
