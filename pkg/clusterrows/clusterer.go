package clusterrows

import (
	"context"

	"github.com/dennisfrancis/clusterrows-go/pkg/clusterrows/models"
)

// Clusterer assigns every sample row of a request to a cluster.
// It returns one Assignment per row; a Label of -1 rejects the input.
type Clusterer interface {
	Cluster(ctx context.Context, req models.ClusterRequest) ([]models.Assignment, error)
}

// ClusterFunc adapts a plain function to the Clusterer interface.
type ClusterFunc func(ctx context.Context, req models.ClusterRequest) ([]models.Assignment, error)

// Cluster calls f.
func (f ClusterFunc) Cluster(ctx context.Context, req models.ClusterRequest) ([]models.Assignment, error) {
	return f(ctx, req)
}
