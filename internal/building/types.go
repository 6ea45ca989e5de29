package building

import (
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Apartment mirrors an entry of /apartments.
type Apartment struct {
	AddressNumber      int64     `json:"addressNumber"`
	Area               float64   `json:"area"`
	Status             string    `json:"status"`
	OwnerPhone         int64     `json:"ownerPhone,omitempty"`
	Owner              *Resident `json:"owner,omitempty"`
	NumberOfMembers    int       `json:"numberOfMembers"`
	NumberOfMotorbikes int64     `json:"numberOfMotorbikes"`
	NumberOfCars       int64     `json:"numberOfCars"`
}

// OwnerName returns the owner's name or "" when unassigned.
func (a Apartment) OwnerName() string {
	if a.Owner == nil {
		return ""
	}
	return a.Owner.Name
}

// Resident mirrors an entry of /residents.
type Resident struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Dob           string `json:"dob,omitempty"`
	Gender        string `json:"gender,omitempty"`
	CIC           string `json:"cic,omitempty"`
	Status        string `json:"status"`
	AddressNumber int64  `json:"addressNumber,omitempty"`
}

// ParsedDob returns the date of birth, or the zero time when missing.
func (r Resident) ParsedDob() time.Time { return parseTimestamp(r.Dob) }

// Vehicle mirrors an entry of /vehicles. The plate number is the ID.
type Vehicle struct {
	ID           string `json:"id"`
	Category     string `json:"category"`
	RegisterDate string `json:"registerDate,omitempty"`
	ApartmentID  int64  `json:"apartmentId,omitempty"`
}

// ParsedRegisterDate returns the registration date, or the zero time.
func (v Vehicle) ParsedRegisterDate() time.Time { return parseTimestamp(v.RegisterDate) }

// Fee mirrors an entry of /fees.
type Fee struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	FeeType     string  `json:"feeTypeEnum"`
	UnitPrice   float64 `json:"unitPrice"`
	CreatedAt   string  `json:"createdAt,omitempty"`
}

// ParsedCreatedAt returns the creation date, or the zero time.
func (f Fee) ParsedCreatedAt() time.Time { return parseTimestamp(f.CreatedAt) }

// Invoice mirrors an entry of /invoices.
type Invoice struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IsActive    int    `json:"isActive"`
	LastUpdated string `json:"lastUpdated,omitempty"`
	FeeList     []Fee  `json:"feeList,omitempty"`
}

// Active reports whether the invoice is currently collected.
func (i Invoice) Active() bool { return i.IsActive != 0 }

// ParsedLastUpdated returns the last update time, or the zero time.
func (i Invoice) ParsedLastUpdated() time.Time { return parseTimestamp(i.LastUpdated) }

func parseTimestamp(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", dateLayout} {
		if ts, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return ts
		}
	}
	return time.Time{}
}

func formatDate(value string) string {
	ts := parseTimestamp(value)
	if ts.IsZero() {
		return value
	}
	return ts.Format(dateLayout)
}

func formatInt(v int64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatInt(v, 10)
}
