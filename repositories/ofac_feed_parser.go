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

// OfacFeedParser reads the OFAC "enhanced" SDN XML format: a flat list of
// <entity> elements, each carrying translated names, identity documents,
// free-form features and sanctions program codes.
type OfacFeedParser struct{}

type ofacEntity struct {
	Id         string `xml:"id,attr"`
	EntityType string `xml:"entityType"`
	Names      []struct {
		Translations []struct {
			FormattedFullName  string `xml:"formattedFullName"`
			FormattedFirstName string `xml:"formattedFirstName"`
			FormattedLastName  string `xml:"formattedLastName"`
		} `xml:"translations>translation"`
	} `xml:"names>name"`
	Documents []struct {
		Type           string `xml:"type"`
		DocumentNumber string `xml:"documentNumber"`
		IssuingCountry string `xml:"issuingCountry"`
	} `xml:"identityDocuments>identityDocument"`
	Features []struct {
		Type  string `xml:"type"`
		Value string `xml:"value"`
	} `xml:"features>feature"`
	Addresses []struct {
		AddressLine1 string `xml:"addressLine1"`
		City         string `xml:"city"`
		Country      string `xml:"country"`
	} `xml:"addresses>address"`
	Programs []string `xml:"sanctionsPrograms>sanctionsProgram"`
}

func (OfacFeedParser) Parse(ctx context.Context, r io.Reader, sink RecordSink) (models.FeedValidation, error) {
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
				"OFAC feed document is not well-formed")
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "entity" {
			continue
		}

		index++

		var raw ofacEntity
		if err := dec.DecodeElement(&raw, &start); err != nil {
			// The surrounding document is still well-formed XML at this
			// point; only this record could not be bound.
			validation.Skip(fmt.Sprintf("record %d: %v", index, err))
			continue
		}

		record, ok := adaptOfacEntity(raw)
		if !ok {
			validation.Skip(fmt.Sprintf("record %d (id %q): no usable name or id", index, raw.Id))
			continue
		}

		if err := sink(record); err != nil {
			return validation, err
		}
	}

	return validation, nil
}

func adaptOfacEntity(raw ofacEntity) (models.RawRecord, bool) {
	record := models.RawRecord{
		ExternalId: strings.TrimSpace(raw.Id),
		Kind:       strings.ToLower(strings.TrimSpace(raw.EntityType)),
		Programs:   trimAll(raw.Programs),
	}
	if record.ExternalId == "" {
		return models.RawRecord{}, false
	}
	if record.Kind == "" {
		record.Kind = "entity"
	}

	var names []string
	for _, name := range raw.Names {
		for _, tr := range name.Translations {
			if full := strings.TrimSpace(tr.FormattedFullName); full != "" {
				names = append(names, full)
			}
			if record.FirstName == "" {
				record.FirstName = strings.TrimSpace(tr.FormattedFirstName)
			}
			if record.LastName == "" {
				record.LastName = strings.TrimSpace(tr.FormattedLastName)
			}
		}
	}
	if len(names) == 0 {
		return models.RawRecord{}, false
	}

	record.PrimaryName = names[0]
	for _, alias := range names[1:] {
		record.Aliases = append(record.Aliases, models.RawAlias{Name: alias})
	}

	for _, doc := range raw.Documents {
		if number := strings.TrimSpace(doc.DocumentNumber); number != "" {
			record.Documents = append(record.Documents, models.RawDocument{
				Type:           strings.TrimSpace(doc.Type),
				Number:         number,
				IssuingCountry: strings.TrimSpace(doc.IssuingCountry),
			})
		}
	}

	for _, feature := range raw.Features {
		kind := strings.ToUpper(strings.TrimSpace(feature.Type))
		value := strings.TrimSpace(feature.Value)
		if value == "" {
			continue
		}
		switch {
		case strings.Contains(kind, "DOB"), strings.Contains(kind, "DATE") && strings.Contains(kind, "BIRTH"):
			record.DateOfBirth = value
		case strings.Contains(kind, "POB"), strings.Contains(kind, "PLACE") && strings.Contains(kind, "BIRTH"):
			record.PlaceOfBirth = value
		case strings.Contains(kind, "NATIONAL"):
			record.Nationality = value
		case strings.Contains(kind, "CITIZEN"):
			record.Citizenship = value
		case strings.Contains(kind, "IMO"):
			record.Imo = value
		case strings.Contains(kind, "MMSI"):
			record.Mmsi = value
		case strings.Contains(kind, "FLAG"):
			record.Flag = value
		case strings.Contains(kind, "TONNAGE"):
			record.Tonnage = value
		}
	}

	for _, addr := range raw.Addresses {
		line := strings.TrimSpace(addr.AddressLine1)
		city := strings.TrimSpace(addr.City)
		country := strings.TrimSpace(addr.Country)
		if line == "" && city == "" && country == "" {
			continue
		}
		record.Addresses = append(record.Addresses, models.RawAddress{
			Line:    line,
			City:    city,
			Country: country,
		})
	}

	return record, true
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
