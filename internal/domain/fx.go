package domain

import (
	"go.uber.org/fx"

	"github.com/Conte777/brewquest/internal/domain/approval"
	"github.com/Conte777/brewquest/internal/domain/content"
	"github.com/Conte777/brewquest/internal/domain/health"
	"github.com/Conte777/brewquest/internal/domain/journey"
	"github.com/Conte777/brewquest/internal/domain/newsletter"
	"github.com/Conte777/brewquest/internal/domain/transition"
)

var Module = fx.Module(
	"domain",
	journey.Module,
	content.Module,
	newsletter.Module,
	transition.Module,
	approval.Module,
	health.Module,
)
