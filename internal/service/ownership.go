package service

import "taskboard/internal/domain"

type ownedEntity interface {
	OwnerID() domain.UserID
}

// owned is the single ownership gate: it passes an entity through only when
// it exists and belongs to the given owner. A missing entity and a foreign
// entity are indistinguishable to the caller, so existence never leaks.
func owned[E interface {
	ownedEntity
	comparable
}](entity E, ownerID domain.UserID) (E, bool) {
	var zero E
	if entity == zero || entity.OwnerID() != ownerID {
		return zero, false
	}
	return entity, true
}
