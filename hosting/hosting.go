package hosting

import (
	"context"

	"github.com/jrsteele09/nearme-publisher/site"
)

// Deployer is the subset of the hosting API the publish pipeline drives. Each
// method is one remote transaction with its own outcome.
type Deployer interface {
	Upload(ctx context.Context, accessToken string, artifact site.Artifact) (FileRef, error)
	CreateDeployment(ctx context.Context, accessToken, name string, files []FileRef) (Deployment, error)
	CreateAlias(ctx context.Context, accessToken, deploymentID, alias string) error
}

// FileRef describes an uploaded file inside a deployment request.
type FileRef struct {
	File string `json:"file"`
	Size int    `json:"size"`
	SHA  string `json:"sha"`
}

// Deployment is the backend's record of a created deployment. URL is the
// canonical address assigned by the backend.
type Deployment struct {
	ID  string
	URL string
}

const deploymentTypeStatic = "STATIC"

type deploymentRequest struct {
	Name           string    `json:"name"`
	Files          []FileRef `json:"files"`
	DeploymentType string    `json:"deploymentType"`
}

type deploymentResponse struct {
	URL          string `json:"url"`
	DeploymentID string `json:"deploymentId"`
}

type aliasRequest struct {
	Alias string `json:"alias"`
}

type uploadResponse struct {
	Digest string `json:"digest"`
}
