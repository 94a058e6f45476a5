package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/singerjob/singerjob/internal/domain/opportunity"
)

// FilterSpecFromQuery maps list-endpoint query parameters onto a
// FilterSpec. Set-valued params accept repetition and comma lists:
// ?artTypes=a&artTypes=b and ?artTypes=a,b are equivalent.
func FilterSpecFromQuery(ctx *gin.Context) (opportunity.FilterSpec, bool) {
	spec := opportunity.FilterSpec{
		ArtTypes:  multiParam(ctx, "artTypes"),
		Locations: multiParam(ctx, "locations"),
		Query:     strings.TrimSpace(ctx.Query("q")),
	}

	if raw := ctx.Query("minExperience"); raw != "" {
		n, err := strconv.Atoi(raw)

		if err != nil || n < 0 {
			RespondBadRequest(ctx, "minExperience must be a non-negative integer", nil)
			return spec, false
		}

		spec.MinExperience = n
	}

	if raw := ctx.Query("minPayment"); raw != "" {
		f, err := strconv.ParseFloat(raw, 64)

		if err != nil || f < 0 {
			RespondBadRequest(ctx, "minPayment must be a non-negative number", nil)
			return spec, false
		}

		spec.MinPayment = f
	}

	return spec, true
}

func multiParam(ctx *gin.Context, name string) []string {
	var out []string

	for _, raw := range ctx.QueryArray(name) {
		for _, part := range strings.Split(raw, ",") {
			if s := strings.TrimSpace(part); s != "" {
				out = append(out, s)
			}
		}
	}

	return out
}
