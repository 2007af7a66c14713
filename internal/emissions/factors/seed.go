package factors

// Embedded default reference data. Values are indicative global averages
// (kg CO2e/km, kWh/km, kg CO2e/kWh) drawn from published PCAF motor-vehicle
// tables; deployments replace them with a database-backed store.

// DefaultEmissionFactors returns the embedded vehicle emission factor table.
func DefaultEmissionFactors() []EmissionFactor {
	return []EmissionFactor{
		// Passenger cars
		{VehicleCategory: "passenger_car", LegacyVehicleType: "car", FuelType: "gasoline", EngineSizeBand: "small", CombustionKGPerKM: 0.15, Source: "default"},
		{VehicleCategory: "passenger_car", LegacyVehicleType: "car", FuelType: "gasoline", EngineSizeBand: "medium", CombustionKGPerKM: 0.18, Source: "default"},
		{VehicleCategory: "passenger_car", LegacyVehicleType: "car", FuelType: "gasoline", EngineSizeBand: "large", CombustionKGPerKM: 0.25, Source: "default"},
		{VehicleCategory: "passenger_car", LegacyVehicleType: "car", FuelType: "gasoline", EngineSizeBand: BandAll, CombustionKGPerKM: 0.18, Source: "default"},
		{VehicleCategory: "passenger_car", LegacyVehicleType: "car", FuelType: "diesel", EngineSizeBand: BandAll, CombustionKGPerKM: 0.17, Source: "default"},
		{VehicleCategory: "passenger_car", LegacyVehicleType: "car", FuelType: "electric", EngineSizeBand: BandAll, ElectricityKWHPerKM: 0.18, Source: "default"},
		{VehicleCategory: "passenger_car", LegacyVehicleType: "car", FuelType: "hybrid", EngineSizeBand: BandAll, CombustionKGPerKM: 0.12, ElectricityKWHPerKM: 0.10, Source: "default"},
		{VehicleCategory: "passenger_car", LegacyVehicleType: "car", FuelType: "natural_gas", EngineSizeBand: BandAll, CombustionKGPerKM: 0.16, Source: "default"},
		{VehicleCategory: "passenger_car", LegacyVehicleType: "car", FuelType: "propane", EngineSizeBand: BandAll, CombustionKGPerKM: 0.17, Source: "default"},

		// Motorcycles
		{VehicleCategory: "motorcycle", FuelType: "gasoline", EngineSizeBand: BandAll, CombustionKGPerKM: 0.10, Source: "default"},
		{VehicleCategory: "motorcycle", FuelType: "electric", EngineSizeBand: BandAll, ElectricityKWHPerKM: 0.06, Source: "default"},

		// Commercial trucks
		{VehicleCategory: "light_commercial_truck", LegacyVehicleType: "van", FuelType: "gasoline", EngineSizeBand: BandAll, CombustionKGPerKM: 0.25, Source: "default"},
		{VehicleCategory: "light_commercial_truck", LegacyVehicleType: "van", FuelType: "diesel", EngineSizeBand: BandAll, CombustionKGPerKM: 0.23, Source: "default"},
		{VehicleCategory: "light_commercial_truck", LegacyVehicleType: "van", FuelType: "electric", EngineSizeBand: BandAll, ElectricityKWHPerKM: 0.30, Source: "default"},
		{VehicleCategory: "medium_commercial_truck", FuelType: "diesel", EngineSizeBand: BandAll, CombustionKGPerKM: 0.45, Source: "default"},
		{VehicleCategory: "heavy_commercial_truck", LegacyVehicleType: "truck", FuelType: "diesel", EngineSizeBand: BandAll, CombustionKGPerKM: 0.85, Source: "default"},
		{VehicleCategory: "heavy_commercial_truck", LegacyVehicleType: "truck", FuelType: "natural_gas", EngineSizeBand: BandAll, CombustionKGPerKM: 0.78, Source: "default"},

		// Buses
		{VehicleCategory: "bus", FuelType: "diesel", EngineSizeBand: BandAll, CombustionKGPerKM: 0.95, Source: "default"},
		{VehicleCategory: "bus", FuelType: "electric", EngineSizeBand: BandAll, ElectricityKWHPerKM: 1.20, Source: "default"},
		{VehicleCategory: "bus", FuelType: "hybrid", EngineSizeBand: BandAll, CombustionKGPerKM: 0.65, ElectricityKWHPerKM: 0.60, Source: "default"},

		// Other financed assets
		{VehicleCategory: "recreational_vehicle", LegacyVehicleType: "rv", FuelType: "gasoline", EngineSizeBand: BandAll, CombustionKGPerKM: 0.35, Source: "default"},
		{VehicleCategory: "boat", FuelType: "gasoline", EngineSizeBand: BandAll, CombustionKGPerKM: 0.50, Source: "default"},
		{VehicleCategory: "boat", FuelType: "diesel", EngineSizeBand: BandAll, CombustionKGPerKM: 0.55, Source: "default"},
		{VehicleCategory: "yellow_equipment", FuelType: "diesel", EngineSizeBand: BandAll, CombustionKGPerKM: 1.10, Source: "default"},
	}
}

// DefaultGridFactors returns the embedded grid carbon-intensity table,
// including the mandatory Global Average fallback.
func DefaultGridFactors() []GridEmissionFactor {
	return []GridEmissionFactor{
		{Region: GlobalAverageRegion, KGPerKWH: 0.45, Source: "default", VintageYear: 2024},
		{Region: "United States", KGPerKWH: 0.38, Source: "default", VintageYear: 2024},
		{Region: "Canada", KGPerKWH: 0.13, Source: "default", VintageYear: 2024},
		{Region: "Germany", KGPerKWH: 0.35, Source: "default", VintageYear: 2024},
		{Region: "France", KGPerKWH: 0.06, Source: "default", VintageYear: 2024},
		{Region: "United Kingdom", KGPerKWH: 0.21, Source: "default", VintageYear: 2024},
		{Region: "China", KGPerKWH: 0.58, Source: "default", VintageYear: 2024},
		{Region: "India", KGPerKWH: 0.71, Source: "default", VintageYear: 2024},
		{Region: "Norway", KGPerKWH: 0.02, Source: "default", VintageYear: 2024},
		{Region: "Australia", KGPerKWH: 0.66, Source: "default", VintageYear: 2024},
	}
}

// DefaultAnnualDistanceKM returns the assumed annual distance for a vehicle
// category when the record carries no actual figure. Using it marks the
// distance completeness signal false in the data-quality classification.
func DefaultAnnualDistanceKM(category string) float64 {
	switch category {
	case "motorcycle":
		return 8000
	case "light_commercial_truck":
		return 20000
	case "medium_commercial_truck":
		return 35000
	case "heavy_commercial_truck":
		return 80000
	case "bus":
		return 55000
	case "recreational_vehicle":
		return 6000
	case "boat":
		return 3000
	case "yellow_equipment":
		return 10000
	default:
		return 15000
	}
}
