package game

// Director plays a session in place of a human
type Director interface {
	// Next picks the following action, or reports false when there is none
	Next(session *Session) (Intent, bool)
}

// Play lets director act on session until the game ends or the director
// gives up. It returns every event produced.
func Play(session *Session, director Director) []Event {
	events := session.Settle()
	for session.CanPlay() {
		intent, ok := director.Next(session)
		if !ok {
			break
		}
		events = append(events, session.Apply(intent)...)
	}
	return events
}
