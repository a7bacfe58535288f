package handlers

import (
	"net/http"

	"cmc-mcp/internal/models"
	"cmc-mcp/internal/registry"
	"cmc-mcp/internal/session"
)

// ToolsHandler lists the tools active at the request's tier.
func ToolsHandler(reg *registry.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tier, _ := session.Tier(r.Context())

		active := reg.Active(tier)
		list := models.ToolList{
			Tier:  tier.String(),
			Count: len(active),
			Tools: make([]models.ToolSummary, 0, len(active)),
		}
		for _, def := range active {
			list.Tools = append(list.Tools, models.ToolSummary{
				Name:         def.Name,
				Description:  def.Description,
				Path:         def.Path,
				RequiredTier: def.Tier.String(),
			})
		}
		writeJSON(w, http.StatusOK, list)
	}
}
