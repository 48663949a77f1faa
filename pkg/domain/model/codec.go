package model

// CodecStatus represents availability of one image codec capability
type CodecStatus struct {
	Name      string `json:"name"`
	Available bool   `json:"available"`
	Detail    string `json:"detail,omitempty"`
}

// MissingCodecs returns the names of unavailable capabilities
func MissingCodecs(statuses []CodecStatus) []string {
	var missing []string
	for _, s := range statuses {
		if !s.Available {
			missing = append(missing, s.Name)
		}
	}
	return missing
}
