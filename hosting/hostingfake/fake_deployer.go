package hostingfake

import (
	"context"
	"sync"

	"github.com/jrsteele09/nearme-publisher/hosting"
	"github.com/jrsteele09/nearme-publisher/site"
)

var _ hosting.Deployer = (*FakeDeployer)(nil)

// FakeDeployer records calls and returns canned results. Zero value succeeds
// every call with a deployment "dep_1" at "dep_1.host".
type FakeDeployer struct {
	UploadErr error
	DeployErr error
	AliasErr  error

	Deployment hosting.Deployment

	lock        sync.Mutex
	Uploads     []site.Artifact
	Deployments []DeployCall
	Aliases     []AliasCall
	Tokens      []string
}

type DeployCall struct {
	Name  string
	Files []hosting.FileRef
}

type AliasCall struct {
	DeploymentID string
	Alias        string
}

func NewFakeDeployer() *FakeDeployer {
	return &FakeDeployer{
		Deployment: hosting.Deployment{ID: "dep_1", URL: "dep_1.host"},
	}
}

func (f *FakeDeployer) Upload(_ context.Context, accessToken string, artifact site.Artifact) (hosting.FileRef, error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	f.Tokens = append(f.Tokens, accessToken)
	f.Uploads = append(f.Uploads, artifact)
	if f.UploadErr != nil {
		return hosting.FileRef{}, f.UploadErr
	}
	return hosting.FileRef{File: artifact.Name, Size: artifact.Size, SHA: artifact.Digest}, nil
}

func (f *FakeDeployer) CreateDeployment(_ context.Context, accessToken, name string, files []hosting.FileRef) (hosting.Deployment, error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	f.Tokens = append(f.Tokens, accessToken)
	f.Deployments = append(f.Deployments, DeployCall{Name: name, Files: files})
	if f.DeployErr != nil {
		return hosting.Deployment{}, f.DeployErr
	}
	return f.Deployment, nil
}

func (f *FakeDeployer) CreateAlias(_ context.Context, accessToken, deploymentID, alias string) error {
	f.lock.Lock()
	defer f.lock.Unlock()

	f.Tokens = append(f.Tokens, accessToken)
	f.Aliases = append(f.Aliases, AliasCall{DeploymentID: deploymentID, Alias: alias})
	return f.AliasErr
}

// Calls is the total number of remote calls made.
func (f *FakeDeployer) Calls() int {
	f.lock.Lock()
	defer f.lock.Unlock()
	return len(f.Uploads) + len(f.Deployments) + len(f.Aliases)
}
