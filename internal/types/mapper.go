package types

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/omnifolio/influence-indexer/internal/domain"
	"github.com/omnifolio/influence-indexer/internal/store/schema"
)

// ActivityToSchema converts a domain activity record into its storage row
func ActivityToSchema(record domain.ActivityRecord) (schema.LobbyingActivity, error) {
	lobbyists, err := marshalStringList(record.Lobbyists)
	if err != nil {
		return schema.LobbyingActivity{}, fmt.Errorf("failed to encode lobbyists: %w", err)
	}
	issueCodes, err := marshalStringList(record.IssueCodes)
	if err != nil {
		return schema.LobbyingActivity{}, fmt.Errorf("failed to encode issue codes: %w", err)
	}
	entities, err := marshalStringList(record.GovernmentEntities)
	if err != nil {
		return schema.LobbyingActivity{}, fmt.Errorf("failed to encode government entities: %w", err)
	}

	row := schema.LobbyingActivity{
		Key:                record.Key,
		FilingUUID:         record.FilingUUID,
		FilingDate:         record.FilingDate,
		FilingYear:         record.FilingYear,
		FilingQuarter:      record.FilingQuarter,
		Registrant:         record.Registrant,
		Amount:             record.Amount,
		Lobbyists:          lobbyists,
		IssueCodes:         issueCodes,
		GovernmentEntities: entities,
	}
	if record.ClientDescription != "" {
		row.ClientDescription = &record.ClientDescription
	}
	if record.DocumentURL != "" {
		row.DocumentURL = &record.DocumentURL
	}

	return row, nil
}

// ActivityToDomain converts a storage row back into a domain activity record
func ActivityToDomain(row schema.LobbyingActivity) (domain.ActivityRecord, error) {
	lobbyists, err := unmarshalStringList(row.Lobbyists)
	if err != nil {
		return domain.ActivityRecord{}, fmt.Errorf("failed to decode lobbyists: %w", err)
	}
	issueCodes, err := unmarshalStringList(row.IssueCodes)
	if err != nil {
		return domain.ActivityRecord{}, fmt.Errorf("failed to decode issue codes: %w", err)
	}
	entities, err := unmarshalStringList(row.GovernmentEntities)
	if err != nil {
		return domain.ActivityRecord{}, fmt.Errorf("failed to decode government entities: %w", err)
	}

	record := domain.ActivityRecord{
		Key:                row.Key,
		FilingUUID:         row.FilingUUID,
		FilingDate:         row.FilingDate,
		FilingYear:         row.FilingYear,
		FilingQuarter:      row.FilingQuarter,
		Registrant:         row.Registrant,
		Amount:             row.Amount,
		Lobbyists:          lobbyists,
		IssueCodes:         issueCodes,
		GovernmentEntities: entities,
	}
	if row.ClientDescription != nil {
		record.ClientDescription = *row.ClientDescription
	}
	if row.DocumentURL != nil {
		record.DocumentURL = *row.DocumentURL
	}

	return record, nil
}

// ActivitiesToDomain converts a slice of storage rows, skipping none
func ActivitiesToDomain(rows []schema.LobbyingActivity) ([]domain.ActivityRecord, error) {
	records := make([]domain.ActivityRecord, 0, len(rows))
	for _, row := range rows {
		record, err := ActivityToDomain(row)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// ActivitiesToSchema converts a slice of domain records into storage rows
func ActivitiesToSchema(records []domain.ActivityRecord) ([]schema.LobbyingActivity, error) {
	rows := make([]schema.LobbyingActivity, 0, len(records))
	for _, record := range records {
		row, err := ActivityToSchema(record)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func marshalStringList(values []string) (datatypes.JSON, error) {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(data), nil
}

func unmarshalStringList(data datatypes.JSON) ([]string, error) {
	if len(data) == 0 {
		return []string{}, nil
	}
	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, err
	}
	return values, nil
}
