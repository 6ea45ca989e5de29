package devserver

import (
	"fmt"
	"time"

	"github.com/five82/concierge/internal/building"
)

var (
	givenNames  = []string{"Lan", "Minh", "Hoa", "Tuan", "Mai", "Duc", "Linh", "Nam", "Thu", "Quang", "Ngoc", "Bao"}
	familyNames = []string{"Nguyen", "Tran", "Le", "Pham", "Hoang", "Vu", "Dang"}
)

// Fixture sizes of the demo data set.
const (
	fixtureFloors        = 3
	fixtureUnitsPerFloor = 10
	fixtureResidents     = 57
	fixtureVehicles      = 25
)

// fixtures builds the demo tables. The data is deterministic so tests can
// rely on counts and ordering.
func fixtures() []*table {
	var apartments []building.Apartment
	for floor := 1; floor <= fixtureFloors; floor++ {
		for unit := 1; unit <= fixtureUnitsPerFloor; unit++ {
			n := len(apartments)
			apartments = append(apartments, building.Apartment{
				AddressNumber: int64(floor*100 + unit),
				Area:          float64(45 + (n%5)*12),
				Status:        building.ApartmentStatuses[(n+1)%len(building.ApartmentStatuses)],
			})
		}
	}

	residents := make([]building.Resident, 0, fixtureResidents)
	for i := range fixtureResidents {
		apt := &apartments[i%len(apartments)]
		r := building.Resident{
			ID:            int64(i + 1),
			Name:          fmt.Sprintf("%s %s", familyNames[(i/len(givenNames))%len(familyNames)], givenNames[i%len(givenNames)]),
			Dob:           time.Date(1960+i%40, time.Month(1+i%12), 1+i%28, 0, 0, 0, 0, time.UTC).Format("2006-01-02"),
			Gender:        []string{"Male", "Female"}[i%2],
			CIC:           fmt.Sprintf("0010%08d", 4217+i*37),
			Status:        building.ResidentStatuses[i%len(building.ResidentStatuses)],
			AddressNumber: apt.AddressNumber,
		}
		residents = append(residents, r)
		apt.NumberOfMembers++
		if apt.Owner == nil {
			owner := r
			apt.Owner = &owner
			apt.OwnerPhone = 912000000 + int64(i)
		}
	}

	vehicles := make([]building.Vehicle, 0, fixtureVehicles)
	for i := range fixtureVehicles {
		apt := &apartments[(i*3)%len(apartments)]
		category := building.VehicleCategories[i%len(building.VehicleCategories)]
		if category == "Car" {
			apt.NumberOfCars++
		} else {
			apt.NumberOfMotorbikes++
		}
		vehicles = append(vehicles, building.Vehicle{
			ID:           fmt.Sprintf("29A-%03d.%02d", 100+i*7, i%100),
			Category:     category,
			RegisterDate: time.Date(2024, time.Month(1+i%12), 1+i%28, 0, 0, 0, 0, time.UTC).Format("2006-01-02"),
			ApartmentID:  apt.AddressNumber,
		})
	}

	fees := []building.Fee{
		{ID: 1, Name: "Management fee", FeeType: "DEPARTMENT_FEE", UnitPrice: 7000, Description: "Per square metre per month", CreatedAt: "2024-01-02"},
		{ID: 2, Name: "Cleaning fee", FeeType: "DEPARTMENT_FEE", UnitPrice: 6000, Description: "Per resident per month", CreatedAt: "2024-01-02"},
		{ID: 3, Name: "Parking motorbike", FeeType: "DEPARTMENT_FEE", UnitPrice: 70000, Description: "Per motorbike per month", CreatedAt: "2024-01-05"},
		{ID: 4, Name: "Parking car", FeeType: "DEPARTMENT_FEE", UnitPrice: 1200000, Description: "Per car per month", CreatedAt: "2024-01-05"},
		{ID: 5, Name: "Charity fund", FeeType: "CONTRIBUTION_FUND", Description: "Voluntary", CreatedAt: "2024-02-10"},
		{ID: 6, Name: "Tet holiday fund", FeeType: "CONTRIBUTION_FUND", Description: "Voluntary", CreatedAt: "2024-02-10"},
	}

	invoices := []building.Invoice{
		{ID: "INV-2024-01", Name: "January 2024", IsActive: 0, LastUpdated: "2024-02-01", FeeList: fees[:4]},
		{ID: "INV-2024-02", Name: "February 2024", IsActive: 0, LastUpdated: "2024-03-01", FeeList: fees[:5]},
		{ID: "INV-2024-03", Name: "March 2024", IsActive: 1, LastUpdated: "2024-03-15", FeeList: fees[:4]},
		{ID: "INV-TET-2024", Name: "Tet contributions", IsActive: 1, LastUpdated: "2024-02-05", FeeList: fees[5:]},
	}

	return []*table{
		{name: building.Apartments.Name, key: "addressNumber", rows: records(apartments)},
		{name: building.Residents.Name, key: "id", autoKey: true, rows: records(residents), aliases: map[string]string{"apartmentId": "addressNumber"}},
		{name: building.Vehicles.Name, key: "id", rows: records(vehicles)},
		{name: building.Fees.Name, key: "id", autoKey: true, rows: records(fees)},
		{name: building.Invoices.Name, key: "id", rows: records(invoices)},
	}
}

func records[T any](items []T) []record {
	out := make([]record, len(items))
	for i, item := range items {
		out[i] = toRecord(item)
	}
	return out
}
