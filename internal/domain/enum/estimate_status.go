package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// EstimateStatus represents the status of an estimate
type EstimateStatus int

const (
	EstimateStatusDraft    EstimateStatus = 0
	EstimateStatusSent     EstimateStatus = 1
	EstimateStatusApproved EstimateStatus = 2
	EstimateStatusDeclined EstimateStatus = 3
)

func (s EstimateStatus) String() string {
	names := [...]string{"Draft", "Sent", "Approved", "Declined"}
	if int(s) < 0 || int(s) >= len(names) {
		return "Draft"
	}
	return names[s]
}

func (s EstimateStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *EstimateStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = EstimateStatus(i)
		return nil
	}
	switch str {
	case "Draft":
		*s = EstimateStatusDraft
	case "Sent":
		*s = EstimateStatusSent
	case "Approved":
		*s = EstimateStatusApproved
	case "Declined":
		*s = EstimateStatusDeclined
	}
	return nil
}

func (s EstimateStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *EstimateStatus) Scan(value interface{}) error {
	if value == nil {
		*s = EstimateStatusDraft
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = EstimateStatus(v)
	case int:
		*s = EstimateStatus(v)
	}
	return nil
}
