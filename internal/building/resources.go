package building

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/five82/concierge/internal/filter"
)

// Status and category options offered by the backend.
var (
	ApartmentStatuses = []string{"Business", "Residential", "Vacant"}
	ResidentStatuses  = []string{"Resident", "Temporary", "Absent"}
	VehicleCategories = []string{"Motorbike", "Car"}
	FeeTypes          = []string{"DEPARTMENT_FEE", "CONTRIBUTION_FUND"}
)

// Column is one table column of a resource.
type Column struct {
	Title string
	Width int // minimum width in cells
}

// Info is the type-independent description of a resource.
type Info struct {
	Name         string // path segment
	Title        string
	DefaultField string // basic keyword search field
	Schema       filter.Schema
	Columns      []Column
}

// Resource describes a listable entity type.
type Resource[T any] struct {
	Info
	Row func(T) []string
	ID  func(T) string
}

// Apartments is the apartments resource.
var Apartments = Resource[Apartment]{
	Info: Info{
		Name:         "apartments",
		Title:        "Apartments",
		DefaultField: "addressNumber",
		Schema: filter.Schema{
			{Name: "addressNumber", Label: "Address number", Match: filter.Contains, Placeholder: "e.g. 101"},
			{Name: "status", Label: "Status", Match: filter.Exact, Options: ApartmentStatuses},
			{Name: "ownerPhone", Label: "Owner phone", Match: filter.Numeric},
		},
		Columns: []Column{
			{"Address", 8}, {"Area", 6}, {"Status", 11}, {"Owner", 16},
			{"Phone", 11}, {"Members", 7}, {"Motorbikes", 10}, {"Cars", 4},
		},
	},
	Row: func(a Apartment) []string {
		return []string{
			strconv.FormatInt(a.AddressNumber, 10),
			strconv.FormatFloat(a.Area, 'f', -1, 64),
			a.Status,
			a.OwnerName(),
			formatInt(a.OwnerPhone),
			strconv.Itoa(a.NumberOfMembers),
			strconv.FormatInt(a.NumberOfMotorbikes, 10),
			strconv.FormatInt(a.NumberOfCars, 10),
		}
	},
	ID: func(a Apartment) string { return strconv.FormatInt(a.AddressNumber, 10) },
}

// Residents is the residents resource.
var Residents = Resource[Resident]{
	Info: Info{
		Name:         "residents",
		Title:        "Residents",
		DefaultField: "name",
		Schema: filter.Schema{
			{Name: "name", Label: "Name", Match: filter.Contains},
			{Name: "cic", Label: "Citizen ID", Match: filter.Exact},
			{Name: "status", Label: "Status", Match: filter.Exact, Options: ResidentStatuses},
			{Name: "apartmentId", Label: "Apartment", Match: filter.Numeric, Placeholder: "e.g. 101"},
		},
		Columns: []Column{
			{"ID", 4}, {"Name", 18}, {"Born", 10}, {"Gender", 6},
			{"Citizen ID", 12}, {"Status", 9}, {"Apartment", 9},
		},
	},
	Row: func(r Resident) []string {
		return []string{
			strconv.FormatInt(r.ID, 10),
			r.Name,
			formatDate(r.Dob),
			r.Gender,
			r.CIC,
			r.Status,
			formatInt(r.AddressNumber),
		}
	},
	ID: func(r Resident) string { return strconv.FormatInt(r.ID, 10) },
}

// Vehicles is the vehicles resource.
var Vehicles = Resource[Vehicle]{
	Info: Info{
		Name:         "vehicles",
		Title:        "Vehicles",
		DefaultField: "id",
		Schema: filter.Schema{
			{Name: "apartmentID", Label: "Apartment", Match: filter.Exact},
			{Name: "category", Label: "Category", Match: filter.Exact, Options: VehicleCategories},
			{Name: "registerDate", Label: "Registered", Match: filter.Exact, Placeholder: "YYYY-MM-DD"},
			{Name: "id", Label: "Plate", Match: filter.Exact},
		},
		Columns: []Column{{"Plate", 12}, {"Category", 9}, {"Registered", 10}, {"Apartment", 9}},
	},
	Row: func(v Vehicle) []string {
		return []string{v.ID, v.Category, formatDate(v.RegisterDate), formatInt(v.ApartmentID)}
	},
	ID: func(v Vehicle) string { return v.ID },
}

// Fees is the fees resource.
var Fees = Resource[Fee]{
	Info: Info{
		Name:         "fees",
		Title:        "Fees",
		DefaultField: "name",
		Schema: filter.Schema{
			{Name: "name", Label: "Name", Match: filter.Contains},
			{Name: "feeTypeEnum", Label: "Type", Match: filter.Exact, Options: FeeTypes},
		},
		Columns: []Column{{"ID", 4}, {"Name", 20}, {"Type", 17}, {"Unit price", 10}, {"Created", 10}, {"Description", 20}},
	},
	Row: func(f Fee) []string {
		return []string{
			strconv.FormatInt(f.ID, 10),
			f.Name,
			f.FeeType,
			strconv.FormatFloat(f.UnitPrice, 'f', -1, 64),
			formatDate(f.CreatedAt),
			f.Description,
		}
	},
	ID: func(f Fee) string { return strconv.FormatInt(f.ID, 10) },
}

// Invoices is the invoices resource.
var Invoices = Resource[Invoice]{
	Info: Info{
		Name:         "invoices",
		Title:        "Invoices",
		DefaultField: "name",
		Schema: filter.Schema{
			{Name: "name", Label: "Name", Match: filter.Contains},
			{Name: "id", Label: "ID", Match: filter.Exact},
		},
		Columns: []Column{{"ID", 8}, {"Name", 20}, {"Active", 6}, {"Fees", 4}, {"Updated", 10}, {"Description", 20}},
	},
	Row: func(i Invoice) []string {
		active := "no"
		if i.Active() {
			active = "yes"
		}
		return []string{i.ID, i.Name, active, strconv.Itoa(len(i.FeeList)), formatDate(i.LastUpdated), i.Description}
	},
	ID: func(i Invoice) string { return i.ID },
}

// Catalog lists every resource in navigation order.
var Catalog = []Info{
	Apartments.Info,
	Residents.Info,
	Vehicles.Info,
	Fees.Info,
	Invoices.Info,
}

// Lookup finds a resource by name, ignoring case.
func Lookup(name string) (Info, bool) {
	name = strings.ToLower(strings.Trim(strings.TrimSpace(name), "/"))
	for _, info := range Catalog {
		if info.Name == name {
			return info, true
		}
	}
	return Info{}, false
}

// Names returns the sorted resource names.
func Names() []string {
	names := make([]string, len(Catalog))
	for i, info := range Catalog {
		names[i] = info.Name
	}
	sort.Strings(names)
	return names
}

// ErrUnknownResource is wrapped by ParseResource.
var ErrUnknownResource = errors.New("unknown resource")

// ParseResource is Lookup with an error listing the valid names.
func ParseResource(name string) (Info, error) {
	info, ok := Lookup(name)
	if !ok {
		return Info{}, fmt.Errorf("%w %q (want one of %s)", ErrUnknownResource, name, strings.Join(Names(), ", "))
	}
	return info, nil
}
