package ares

func (d *Data) MilestoneCount(playerID string) (int, bool) {
	for _, m := range d.Milestones {
		if m.PlayerID == playerID {
			return m.Count, true
		}
	}
	return 0, false
}

func (h *Handler) incrementMilestone(playerID string) error {
	for i := range h.data.Milestones {
		if h.data.Milestones[i].PlayerID == playerID {
			h.data.Milestones[i].Count++
			return nil
		}
	}
	return invariantf("player %q not in the Ares milestone results", playerID)
}

// QualifiesForNetworker reports whether the player has earned adjacency
// bonuses on enough placements for the Networker milestone.
func (h *Handler) QualifiesForNetworker(playerID string) (bool, error) {
	n, ok := h.data.MilestoneCount(playerID)
	if !ok {
		return false, invariantf("player %q not in the Ares milestone results", playerID)
	}
	return n >= h.tune.Milestones.NetworkerThreshold, nil
}
