package checkbusiness

import (
	"bytes"
	"encoding/json"

	"business-lookup/internal/models"
)

// Input is the request body and the Zeebe job variables.
type Input struct {
	Name     looseString `json:"name"`
	Location looseString `json:"location"`
}

func (in Input) Query() models.Query {
	return models.Query{Name: string(in.Name), Location: string(in.Location)}
}

// looseString accepts any JSON value. Strings are used as-is, null becomes
// empty, anything else keeps its JSON text.
type looseString string

func (s *looseString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = looseString(str)
		return nil
	}
	*s = looseString(data)
	return nil
}
