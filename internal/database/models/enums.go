package models

// EventStatus is the lifecycle state of an event
type EventStatus string

const (
	EventStatusUpcoming  EventStatus = "UPCOMING"
	EventStatusOngoing   EventStatus = "ONGOING"
	EventStatusCompleted EventStatus = "COMPLETED"
)

// Visibility controls who can discover an event
type Visibility string

const (
	VisibilityPublic  Visibility = "PUBLIC"
	VisibilityCollege Visibility = "COLLEGE"
	VisibilityGroup   Visibility = "GROUP"
)

// EventCategory classifies an event
type EventCategory string

const (
	CategoryTechnical  EventCategory = "TECHNICAL"
	CategoryCultural   EventCategory = "CULTURAL"
	CategorySeminar    EventCategory = "SEMINAR"
	CategoryWorkshop   EventCategory = "WORKSHOP"
	CategorySports     EventCategory = "SPORTS"
	CategoryHackathon  EventCategory = "HACKATHON"
	CategoryQuiz       EventCategory = "QUIZ"
	CategoryDramatics  EventCategory = "DRAMATICS"
	CategoryMusic      EventCategory = "MUSIC"
	CategoryDance      EventCategory = "DANCE"
	CategoryLiterary   EventCategory = "LITERARY"
	CategoryArt        EventCategory = "ART"
	CategoryManagement EventCategory = "MANAGEMENT"
	CategorySocial     EventCategory = "SOCIAL"
)

// IsValid checks if the EventStatus is valid
func (s EventStatus) IsValid() bool {
	switch s {
	case EventStatusUpcoming, EventStatusOngoing, EventStatusCompleted:
		return true
	}
	return false
}

// IsValid checks if the Visibility is valid
func (v Visibility) IsValid() bool {
	switch v {
	case VisibilityPublic, VisibilityCollege, VisibilityGroup:
		return true
	}
	return false
}

// IsValid checks if the EventCategory is valid
func (c EventCategory) IsValid() bool {
	switch c {
	case CategoryTechnical, CategoryCultural, CategorySeminar, CategoryWorkshop, CategorySports,
		CategoryHackathon, CategoryQuiz, CategoryDramatics, CategoryMusic, CategoryDance,
		CategoryLiterary, CategoryArt, CategoryManagement, CategorySocial:
		return true
	}
	return false
}

// TargetGroup selects who an offer or a result is shown to
type TargetGroup string

const (
	TargetGroupAll               TargetGroup = "ALL"
	TargetGroupCollege           TargetGroup = "COLLEGE"
	TargetGroupEventParticipants TargetGroup = "EVENT_PARTICIPANTS"
)

// OfferType classifies an offer
type OfferType string

const (
	OfferTypeTeamRecruitment OfferType = "TEAM_RECRUITMENT"
	OfferTypeAnnouncement    OfferType = "ANNOUNCEMENT"
)

// IsValid checks if the TargetGroup is valid
func (g TargetGroup) IsValid() bool {
	switch g {
	case TargetGroupAll, TargetGroupCollege, TargetGroupEventParticipants:
		return true
	}
	return false
}

// IsValid checks if the OfferType is valid
func (t OfferType) IsValid() bool {
	switch t {
	case OfferTypeTeamRecruitment, OfferTypeAnnouncement:
		return true
	}
	return false
}
