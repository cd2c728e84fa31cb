package domain

// Itinerary is the read-only view of a trip used by exports.
// Activities are ordered by OccursAt; Participants and Links by creation time.
type Itinerary struct {
	Trip         Trip
	Activities   []Activity
	Participants []Participant
	Links        []Link
}
