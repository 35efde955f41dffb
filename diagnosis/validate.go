package diagnosis

import (
	"fmt"
	"strings"

	"github.com/agriaide/agriaide-backend/models"
)

// ValidateDiagnosis checks a decoded model output against the diagnosis
// contract and normalizes it in place. A structurally incomplete output
// (blank plant type, or blank disease label on an unhealthy plant) fails the
// attempt. Healthy outputs always end up with the sentinel disease label and
// empty advice fields; the model's adherence to the healthy/advice pairing is
// normalized rather than rejected, since the prompt already instructs it and
// occasional extra advice on a healthy plant is not worth failing the call.
func ValidateDiagnosis(d *models.PlantDiagnosis) error {
	d.PlantType = strings.TrimSpace(d.PlantType)
	d.DiseaseDetected = strings.TrimSpace(d.DiseaseDetected)

	if d.PlantType == "" {
		return fmt.Errorf("model output missing plant type")
	}

	if d.IsHealthy {
		d.DiseaseDetected = models.HealthyDiseaseLabel
		d.ProbableCause = ""
		d.PreventionAdvice = ""
		d.BiologicalTreatment = ""
		d.ChemicalTreatment = ""
		return nil
	}

	if d.DiseaseDetected == "" || strings.EqualFold(d.DiseaseDetected, models.HealthyDiseaseLabel) {
		return fmt.Errorf("model output missing disease label for unhealthy plant")
	}
	return nil
}
