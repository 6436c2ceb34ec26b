package mission

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

type Status string

const (
	StatusOpen       Status = "Open"
	StatusInProgress Status = "InProgress"
	StatusCompleted  Status = "Completed"
	StatusFailed     Status = "Failed"
)

var statuses = []Status{StatusOpen, StatusInProgress, StatusCompleted, StatusFailed}

// ParseStatus is the exact inverse of Status.String. Unknown text is rejected.
func ParseStatus(value string) (Status, error) {
	for _, status := range statuses {
		if string(status) == value {
			return status, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStatus, value)
}

func (s Status) String() string {
	return string(s)
}

func (s Status) Valid() bool {
	_, err := ParseStatus(string(s))
	return err == nil
}

func (s Status) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStatus, string(s))
	}
	return string(s), nil
}

func (s *Status) Scan(value any) error {
	var raw string
	switch v := value.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	case nil:
		return fmt.Errorf("%w: null", ErrUnknownStatus)
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrUnknownStatus, value)
	}

	parsed, err := ParseStatus(strings.TrimSpace(raw))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
