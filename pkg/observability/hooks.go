package observability

import (
	"context"

	"github.com/aretw0/acceptor/pkg/domain"
)

// Combine returns hooks that call every non-nil hook of each set in order.
func Combine(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	var stages []func(context.Context, *domain.StageEvent)
	var builds []func(context.Context, *domain.BuildEvent)
	for _, s := range sets {
		if s.OnStage != nil {
			stages = append(stages, s.OnStage)
		}
		if s.OnBuild != nil {
			builds = append(builds, s.OnBuild)
		}
	}

	var out domain.LifecycleHooks
	if len(stages) > 0 {
		out.OnStage = func(ctx context.Context, e *domain.StageEvent) {
			for _, fn := range stages {
				fn(ctx, e)
			}
		}
	}
	if len(builds) > 0 {
		out.OnBuild = func(ctx context.Context, e *domain.BuildEvent) {
			for _, fn := range builds {
				fn(ctx, e)
			}
		}
	}
	return out
}
