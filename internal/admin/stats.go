package admin

import (
	"github.com/amara-wedding/backend/internal/models"
)

// Stats is the dashboard aggregate for GET /api/admin/stats.
type Stats struct {
	TotalGuests       int                       `json:"totalGuests"`
	TotalGroups       int                       `json:"totalGroups"`
	ByStatus          map[models.RSVPStatus]int `json:"byStatus"`
	ByEvent           map[string]int            `json:"byEvent"`
	GroupsResponded   int                       `json:"groupsResponded"`
	GroupsAllDeclined int                       `json:"groupsAllDeclined"`
	GroupsMixed       int                       `json:"groupsMixed"`
	PlusOnesAllowed   int                       `json:"plusOnesAllowed"`
	PlusOnesUsed      int                       `json:"plusOnesUsed"`
	WithDietary       int                       `json:"withDietary"`
	HotelBooked       int                       `json:"hotelBooked"`
}

// GroupRollups classifies groups by their guests' answers.
type GroupRollups struct {
	Responded   int
	AllDeclined int
	Mixed       int
}

// ComputeGroupRollups walks every group once. A group counts as responded
// when any guest has answered; as all-declined when every guest declined;
// as mixed when it has answers but its guests do not all share one status.
func ComputeGroupRollups(groups []models.Group) GroupRollups {
	var r GroupRollups
	for i := range groups {
		g := &groups[i]
		if len(g.Guests) == 0 {
			continue
		}
		responded := false
		allDeclined := true
		statuses := make(map[models.RSVPStatus]struct{})
		for j := range g.Guests {
			st := g.Guests[j].RSVPStatus
			statuses[st] = struct{}{}
			if st != models.RSVPPending {
				responded = true
			}
			if st != models.RSVPDeclined {
				allDeclined = false
			}
		}
		if responded {
			r.Responded++
			if len(statuses) > 1 {
				r.Mixed++
			}
		}
		if allDeclined {
			r.AllDeclined++
		}
	}
	return r
}

// ComputeGuestTallies counts plus-one, dietary and hotel figures over all guests.
func ComputeGuestTallies(guests []models.Guest) (plusOnesAllowed, plusOnesUsed, withDietary, hotelBooked int) {
	for i := range guests {
		g := &guests[i]
		if g.PlusOneAllowed {
			plusOnesAllowed++
		}
		if g.PlusOne != nil {
			plusOnesUsed++
		}
		if g.DietaryRestrictions != "" {
			withDietary++
		}
		if g.HotelBooked {
			hotelBooked++
		}
	}
	return
}
