package battle

// Simulate drives a full policy-vs-policy encounter to completion and
// returns its outcome. Useful for matchup exploration and balance checks
// without an interactive caller on either side.
func Simulate(session *Session, policyA, policyB Policy) Outcome {
	for !session.Status().Terminal() {
		a := session.Combatant(SideA)
		b := session.Combatant(SideB)

		actA := policyA.Choose(&a, &b)
		actB := policyB.Choose(&b, &a)

		if _, err := session.Submit(SideA, actA); err != nil {
			break
		}
		if session.Kind() == KindPvP {
			if _, err := session.Submit(SideB, actB); err != nil {
				break
			}
		}
	}

	out, _ := session.Outcome()
	return out
}
