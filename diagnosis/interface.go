package diagnosis

import (
	"context"

	"github.com/agriaide/agriaide-backend/models"
)

// Diagnoser is the boundary to the hosted plant disease model. Implementations
// take raw image bytes and return a validated diagnosis; the model itself is a
// black box so handlers can be tested against a fake.
type Diagnoser interface {
	// Diagnose analyzes a plant leaf image. imageFormat is the image subtype
	// without the "image/" prefix, e.g. "jpeg" or "png".
	Diagnose(ctx context.Context, imageFormat string, image []byte) (*models.PlantDiagnosis, error)
}
