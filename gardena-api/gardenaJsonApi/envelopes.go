package gardenaJsonApi

import (
	"github.com/zabeloliver/gardena-prometheus-exporter/gardena-api/gardenaCommands"
	"github.com/zabeloliver/gardena-prometheus-exporter/gardena-api/gardenaStructs"
)

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SessionsRequest struct {
	Sessions Credentials `json:"sessions"`
}

func NewSessionsRequest(email, password string) SessionsRequest {
	return SessionsRequest{Sessions: Credentials{Email: email, Password: password}}
}

type SessionsResponse struct {
	Sessions gardenaStructs.Session `mapstructure:"sessions"`
	Extra    map[string]any         `mapstructure:",remain"`
}

type LocationsResponse struct {
	Locations []gardenaStructs.Location `mapstructure:"locations"`
	Extra     map[string]any            `mapstructure:",remain"`
}

type DevicesResponse struct {
	Devices []gardenaStructs.Device `mapstructure:"devices"`
	Extra   map[string]any          `mapstructure:",remain"`
}

type CommandRequest struct {
	Name       string         `json:"name"`
	Parameters map[string]any `json:"parameters,omitempty"`
}

func NewCommandRequest(cmd gardenaCommands.Command) CommandRequest {
	return CommandRequest{Name: cmd.Name, Parameters: cmd.Parameters}
}

// ErrorResponse is the list form of the error payload. Some endpoints send a
// single error object instead, see ParseErrors.
type ErrorResponse struct {
	Errors []gardenaStructs.Error `mapstructure:"errors"`
	Extra  map[string]any         `mapstructure:",remain"`
}

// ParseErrors extracts the error entities of an error payload. Scalars of
// another kind, such as a numeric status, are converted to the declared
// type. It returns nil without error when the document carries none.
func ParseErrors(doc map[string]any) ([]gardenaStructs.Error, error) {
	if _, ok := doc["errors"]; ok {
		res, err := gardenaStructs.ConstructWeak[ErrorResponse](doc)
		if err != nil {
			return nil, err
		}
		return res.Errors, nil
	}
	single, err := gardenaStructs.ConstructWeak[gardenaStructs.Error](doc)
	if err != nil {
		return nil, err
	}
	if single.Title == "" && single.Detail == "" && single.Status == "" {
		return nil, nil
	}
	return []gardenaStructs.Error{single}, nil
}
