package constants

const (
	AppName        = "cqlschema"
	ReleaseVersion = "v0.1.0"
)
