package api

import (
	"testing"

	"github.com/agriaide/agriaide-backend/models"
)

func analysisWith(plant, disease string) models.PlantAnalysis {
	return models.PlantAnalysis{
		PlantDiagnosis: models.PlantDiagnosis{PlantType: plant, DiseaseDetected: disease},
	}
}

func TestFilterAnalysesEmptyQueryKeepsEverything(t *testing.T) {
	analyses := []models.PlantAnalysis{
		analysisWith("Tomato", "Early blight"),
		analysisWith("Rose", models.HealthyDiseaseLabel),
	}
	for _, q := range []string{"", "   "} {
		if got := filterAnalyses(analyses, q); len(got) != 2 {
			t.Errorf("query %q: got %d records, want 2", q, len(got))
		}
	}
}

func TestFilterAnalysesMatchesPlantTypeAndDisease(t *testing.T) {
	analyses := []models.PlantAnalysis{
		analysisWith("Tomato", "Early blight"),
		analysisWith("Rose", "Black spot"),
		analysisWith("Basil", models.HealthyDiseaseLabel),
	}

	// Case-insensitive substring over both fields
	if got := filterAnalyses(analyses, "TOMA"); len(got) != 1 || got[0].PlantType != "Tomato" {
		t.Errorf("query TOMA: got %+v", got)
	}
	if got := filterAnalyses(analyses, "blight"); len(got) != 1 || got[0].DiseaseDetected != "Early blight" {
		t.Errorf("query blight: got %+v", got)
	}
	if got := filterAnalyses(analyses, "no disease"); len(got) != 1 || got[0].PlantType != "Basil" {
		t.Errorf("query 'no disease': got %+v", got)
	}
}

func TestFilterAnalysesCanYieldEmpty(t *testing.T) {
	analyses := []models.PlantAnalysis{analysisWith("Tomato", "Early blight")}
	if got := filterAnalyses(analyses, "orchid"); len(got) != 0 {
		t.Errorf("expected no matches, got %+v", got)
	}
}
