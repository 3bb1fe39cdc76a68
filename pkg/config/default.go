package config

import "time"

// DefaultFlow returns the built-in battery production flow. Quality checks
// loop back to the step they inspect; storage stages are occasionally
// bypassed.
func DefaultFlow() *FlowConfig {
	cfg := &FlowConfig{
		StartDate:         time.Date(2023, 10, 1, 0, 0, 0, 0, time.UTC),
		BatchSchedule:     "0 */4 * * *",
		StartJitter:       2 * time.Hour,
		ReworkProbability: 0.15,
		MaxReworks:        5,
		Cases:             500,
		Resources:         []string{"Worker A", "Worker B", "Machine X", "Machine Y", "Warehouse Staff 1"},
		BatchSizeMin:      500,
		BatchSizeMax:      5000,
		Stages: []Stage{
			{Name: "Raw Material Arrival", MinDuration: 5 * time.Minute, MaxDuration: 30 * time.Minute, Chance: 1.0},
			{Name: "Quality Check (Raw Material)", MinDuration: 15 * time.Minute, MaxDuration: 60 * time.Minute, Chance: 1.0, ReworkTo: "Raw Material Arrival"},
			{Name: "Storage (Raw Material)", MinDuration: 30 * time.Minute, MaxDuration: 120 * time.Minute, Chance: 0.95},
			{Name: "Material Allocation", MinDuration: 10 * time.Minute, MaxDuration: 45 * time.Minute, Chance: 1.0, ReworkTo: "Quality Check (Raw Material)"},
			{Name: "Production Batch Start", MinDuration: 0, MaxDuration: 0, Chance: 1.0},
			{Name: "In-Process Quality Check", MinDuration: 20 * time.Minute, MaxDuration: 90 * time.Minute, Chance: 1.0, ReworkTo: "Production Batch Start"},
			{Name: "Assembly/Packaging", MinDuration: 60 * time.Minute, MaxDuration: 300 * time.Minute, Chance: 1.0, ReworkTo: "In-Process Quality Check"},
			{Name: "Final Quality Check", MinDuration: 15 * time.Minute, MaxDuration: 75 * time.Minute, Chance: 1.0, ReworkTo: "Assembly/Packaging"},
			{Name: "Storage (Finished Goods)", MinDuration: 45 * time.Minute, MaxDuration: 180 * time.Minute, Chance: 0.98},
			{Name: "Order Fulfillment", MinDuration: 20 * time.Minute, MaxDuration: 150 * time.Minute, Chance: 1.0, ReworkTo: "Storage (Finished Goods)"},
			{Name: "Shipment", MinDuration: 5 * time.Minute, MaxDuration: 60 * time.Minute, Chance: 1.0},
		},
	}
	return cfg
}
