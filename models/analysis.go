package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HealthyDiseaseLabel is the sentinel value stored in DiseaseDetected when
// the model finds no disease. It is a real string, never null/absent, so
// clients can filter on it.
const HealthyDiseaseLabel = "No disease detected"

// PlantDiagnosis is the structured output of the plant disease model.
// When IsHealthy is true the four advice fields are empty strings.
type PlantDiagnosis struct {
	PlantType           string `bson:"plant_type" json:"plantType"`
	DiseaseDetected     string `bson:"disease_detected" json:"diseaseDetected"`
	IsHealthy           bool   `bson:"is_healthy" json:"isHealthy"`
	ProbableCause       string `bson:"probable_cause" json:"probableCause"`
	PreventionAdvice    string `bson:"prevention_advice" json:"preventionAdvice"`
	BiologicalTreatment string `bson:"biological_treatment" json:"biologicalTreatment"`
	ChemicalTreatment   string `bson:"chemical_treatment" json:"chemicalTreatment"`
}

// PlantAnalysis represents one completed analysis in the user's history.
// Records are immutable once created; the only mutation is a hard delete.
type PlantAnalysis struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID         string             `bson:"user_id" json:"user_id"`
	ImageURI       string             `bson:"image_uri" json:"imageUri"` // durable Cloudinary URL
	PlantDiagnosis `bson:",inline"`
	AnalysisDate   string `bson:"analysis_date" json:"analysisDate"` // ISO-8601, descending sort key
}
