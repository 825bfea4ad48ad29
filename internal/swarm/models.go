package swarm

// Record is a single harvester as stored by the remote service.
type Record struct {
	ID   string `json:"_id"`
	Name string `json:"harvester_name"`
}

// Page is one offset-addressed slice of the swarm.
type Page struct {
	Number     int
	Items      []Record
	TotalPages int
	TotalCount int
}

// BreedRequest is the creation payload sent to /sietch/breed.
type BreedRequest struct {
	Name      string `json:"harvester_name"`
	Timestamp int64  `json:"prescience_timestamp"`
	Alignment string `json:"molecular_alignment"`
}

type renameRequest struct {
	NewName string `json:"new_name"`
}

type listResponse struct {
	Data       *[]Record `json:"data"`
	TotalPages int       `json:"totalPages"`
	TotalWorms int       `json:"totalWorms"`
}

type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}
