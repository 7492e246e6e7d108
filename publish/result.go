package publish

import "encoding/json"

// Stage identifies a step of the publish pipeline.
type Stage string

const (
	StageAuthenticate Stage = "authenticate"
	StageValidate     Stage = "validate"
	StageBuild        Stage = "build"
	StageUpload       Stage = "upload"
	StageDeploy       Stage = "deploy"
	StageAliased      Stage = "aliased"
	StageAliasFailed  Stage = "alias_failed"
)

// Result is the outcome of one publish. On failure Stage is the step that
// failed and Msg its detail. On success Stage is StageAliased or
// StageAliasFailed; both are successful publishes.
type Result struct {
	OK    bool
	Stage Stage
	Msg   string
	Err   error

	DeployID      string
	DeployURL     string
	DeployMessage string
	CanonicalURL  string
	Hostname      string
	AliasURL      string
	AliasErr      error
}

type failureBody struct {
	OK  bool   `json:"ok"`
	Msg string `json:"msg"`
}

type successBody struct {
	OK            bool   `json:"ok"`
	DeployID      string `json:"deploy_id"`
	DeployURL     string `json:"deploy_url"`
	DeployMessage string `json:"deploy_message"`
}

// MarshalJSON renders {ok:false,msg} or {ok:true,deploy_id,deploy_url,deploy_message}.
func (r Result) MarshalJSON() ([]byte, error) {
	if !r.OK {
		return json.Marshal(failureBody{OK: false, Msg: r.Msg})
	}
	return json.Marshal(successBody{
		OK:            true,
		DeployID:      r.DeployID,
		DeployURL:     r.DeployURL,
		DeployMessage: r.DeployMessage,
	})
}

// Failure builds a failed result for stage.
func Failure(stage Stage, msg string, err error) Result {
	return Result{OK: false, Stage: stage, Msg: msg, Err: err}
}
