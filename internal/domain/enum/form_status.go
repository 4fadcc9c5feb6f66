package enum

import "encoding/json"

// FormStatus represents the state of a reception form session
type FormStatus int

const (
	FormStatusEditing    FormStatus = 0
	FormStatusSubmitting FormStatus = 1
)

func (s FormStatus) String() string {
	return [...]string{"Editing", "Submitting"}[s]
}

func (s FormStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *FormStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = FormStatus(i)
		return nil
	}
	switch str {
	case "Editing":
		*s = FormStatusEditing
	case "Submitting":
		*s = FormStatusSubmitting
	}
	return nil
}
