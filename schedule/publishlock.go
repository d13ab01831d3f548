/*
publishlock.go - Publish-boundary freeze guard

PURPOSE:
  Once a manager publishes a schedule up to some date, every assignment on
  or before that date is frozen: no create, no update, no delete. The
  boundary itself only ever advances (enforced by the store).

EFFECTIVE DATE:
  create: the candidate's date
  update: the NEW start date being requested. The previous date of the shift
          being moved is not separately checked - a manager can neither
          "unfreeze" a locked shift by moving it forward nor pull a future
          shift back into the locked window; both fail the same check
          against the new value.
  delete: the assignment's existing date

SEE ALSO:
  - planner.go: runs this guard before the overlap guard
*/
package schedule

// CheckPublishLock reports whether a mutation with the given effective date
// is permitted under the period's publish boundary. A nil boundary means
// nothing is published and every mutation is allowed; otherwise the mutation
// must be dated strictly after the boundary.
func CheckPublishLock(effectiveDate Date, publishedUntil *Date) bool {
	if publishedUntil == nil {
		return true
	}
	return effectiveDate.After(*publishedUntil)
}
