package social

import (
	"github.com/tkforgeworks/cookconnect/backend/internal/domain/shared"
)

// Event types for the social-graph aggregate
const (
	EventTypeSocialRecordCreated = "social.record_created"
	EventTypeSocialRecordDeleted = "social.record_deleted"
	EventTypeFollowEdgeAdded     = "social.follow_edge_added"
	EventTypeFollowEdgeRemoved   = "social.follow_edge_removed"
)

// SocialRecordCreatedEvent is raised when a new empty record is inserted
type SocialRecordCreatedEvent struct {
	shared.BaseDomainEvent
}

// NewSocialRecordCreatedEvent creates a SocialRecordCreatedEvent
func NewSocialRecordCreatedEvent(accountID string) *SocialRecordCreatedEvent {
	return &SocialRecordCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSocialRecordCreated, "SocialRecord", accountID),
	}
}

// SocialRecordDeletedEvent is raised when a record is removed
type SocialRecordDeletedEvent struct {
	shared.BaseDomainEvent
}

// NewSocialRecordDeletedEvent creates a SocialRecordDeletedEvent
func NewSocialRecordDeletedEvent(accountID string) *SocialRecordDeletedEvent {
	return &SocialRecordDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSocialRecordDeleted, "SocialRecord", accountID),
	}
}

// FollowEdgeAddedEvent is raised on the source record after Follow
type FollowEdgeAddedEvent struct {
	shared.BaseDomainEvent
	TargetID string `json:"target_id"`
}

// NewFollowEdgeAddedEvent creates a FollowEdgeAddedEvent
func NewFollowEdgeAddedEvent(sourceID, targetID string) *FollowEdgeAddedEvent {
	return &FollowEdgeAddedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeFollowEdgeAdded, "SocialRecord", sourceID),
		TargetID:        targetID,
	}
}

// FollowEdgeRemovedEvent is raised on the source record after Unfollow
type FollowEdgeRemovedEvent struct {
	shared.BaseDomainEvent
	TargetID string `json:"target_id"`
}

// NewFollowEdgeRemovedEvent creates a FollowEdgeRemovedEvent
func NewFollowEdgeRemovedEvent(sourceID, targetID string) *FollowEdgeRemovedEvent {
	return &FollowEdgeRemovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeFollowEdgeRemoved, "SocialRecord", sourceID),
		TargetID:        targetID,
	}
}
