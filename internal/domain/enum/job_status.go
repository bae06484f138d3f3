package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// JobStatus represents where a repair order is in its lifecycle
type JobStatus int

const (
	JobStatusIntake     JobStatus = 0
	JobStatusEstimate   JobStatus = 1
	JobStatusApproved   JobStatus = 2
	JobStatusInProgress JobStatus = 3
	JobStatusCompleted  JobStatus = 4
	JobStatusInvoiced   JobStatus = 5
	JobStatusPaid       JobStatus = 6
)

func (s JobStatus) String() string {
	names := [...]string{"Intake", "Estimate", "Approved", "InProgress", "Completed", "Invoiced", "Paid"}
	if int(s) < 0 || int(s) >= len(names) {
		return "Intake"
	}
	return names[s]
}

func (s JobStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *JobStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = JobStatus(i)
		return nil
	}
	switch str {
	case "Intake":
		*s = JobStatusIntake
	case "Estimate":
		*s = JobStatusEstimate
	case "Approved":
		*s = JobStatusApproved
	case "InProgress":
		*s = JobStatusInProgress
	case "Completed":
		*s = JobStatusCompleted
	case "Invoiced":
		*s = JobStatusInvoiced
	case "Paid":
		*s = JobStatusPaid
	}
	return nil
}

func (s JobStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *JobStatus) Scan(value interface{}) error {
	if value == nil {
		*s = JobStatusIntake
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = JobStatus(v)
	case int:
		*s = JobStatus(v)
	}
	return nil
}
