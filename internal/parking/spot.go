package parking

// VehicleType enumerates what a spot can accommodate.
type VehicleType string

const (
	VehicleCar  VehicleType = "Car"
	VehicleBike VehicleType = "Bike"
	VehicleBus  VehicleType = "Bus"
	VehicleEV   VehicleType = "EV"
)

// Spot is a listed parking location as returned by the backend.
type Spot struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	State         string   `json:"state,omitempty"`
	District      string   `json:"district,omitempty"`
	Address       string   `json:"address"`
	Pincode       string   `json:"pincode,omitempty"`
	Latitude      float64  `json:"latitude,omitempty"`
	Longitude     float64  `json:"longitude,omitempty"`
	PricePerHour  float64  `json:"pricePerHour"`
	WeekendPrice  float64  `json:"weekendPricing,omitempty"`
	TotalCapacity int      `json:"totalCapacity"`
	Status        string   `json:"status,omitempty"`
	ParkingType   string   `json:"parkingType,omitempty"`
	Cctv          bool     `json:"cctv"`
	Guard         bool     `json:"guard"`
	EvCharging    bool     `json:"evCharging"`
	Covered       bool     `json:"covered"`
	MonthlyPlan   bool     `json:"monthlyPlan"`
	VehicleTypes  []string `json:"vehicleTypes"`
}

// AllowedVehicles returns the spot's vehicle types, defaulting to {Car} when
// the backend sends none.
func (s *Spot) AllowedVehicles() []string {
	if len(s.VehicleTypes) == 0 {
		return []string{string(VehicleCar)}
	}
	return s.VehicleTypes
}
