package fetch

// Step identifies the pipeline stage in progress when a failure occurred.
type Step int

const (
	StepCreateSession Step = iota
	StepBuildClient
	StepPrepareFunction
	StepPrepareEntity
	StepSendRequest
	StepReadSchema
	StepBuildTable
)

// String returns the human-readable step label carried in error messages.
func (s Step) String() string {
	switch s {
	case StepCreateSession:
		return "creating http session"
	case StepBuildClient:
		return "constructing odata client"
	case StepPrepareFunction:
		return "preparing data request for function"
	case StepPrepareEntity:
		return "preparing data request for entity set"
	case StepSendRequest:
		return "sending request and receiving data"
	case StepReadSchema:
		return "receiving headers"
	case StepBuildTable:
		return "creating result table"
	default:
		return "unknown step"
	}
}
