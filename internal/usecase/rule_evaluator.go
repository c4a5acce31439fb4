package usecase

import "github.com/xavierca1/solarleads/internal/entity"

// ShouldFire decide se a regra dispara agora para o lead. Função pura: sem I/O.
// hoursSinceLastMessage é calculado uma vez por lead, pelo chamador.
func ShouldFire(rule entity.FollowUpRule, lead *entity.Lead, lastMessage *entity.Message, hoursSinceLastMessage float64) bool {
	if lead == nil || lastMessage == nil {
		return false
	}

	switch rule.Trigger {
	case entity.TriggerNoResponse:
		// A empresa falou por último e ficou sem resposta.
		return lastMessage.Direction == entity.DirectionOutbound &&
			hoursSinceLastMessage >= rule.DelayHours

	case entity.TriggerProposalSent:
		return lead.Status == entity.LeadStatusProposal &&
			hoursSinceLastMessage >= rule.DelayHours

	case entity.TriggerColdLead:
		return lead.Status == entity.LeadStatusCold &&
			hoursSinceLastMessage >= rule.DelayHours

	default:
		return false
	}
}

// firstFiring percorre as regras em ordem e devolve a primeira que dispara.
func firstFiring(rules []entity.FollowUpRule, lead *entity.Lead, lastMessage *entity.Message, hoursSince float64) (entity.FollowUpRule, bool) {
	for _, rule := range rules {
		if ShouldFire(rule, lead, lastMessage, hoursSince) {
			return rule, true
		}
	}
	return entity.FollowUpRule{}, false
}
