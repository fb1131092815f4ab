package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/oasis-api/internal/domain/entity"
)

func tiers(starter, professional, business int64) map[entity.TierKey]entity.Tier {
	return map[entity.TierKey]entity.Tier{
		entity.TierStarter:      {Name: "Starter", Price: decimal.NewFromInt(starter)},
		entity.TierProfessional: {Name: "Professional", Price: decimal.NewFromInt(professional)},
		entity.TierBusiness:     {Name: "Business", Price: decimal.NewFromInt(business)},
	}
}

func defaultAutomations() []entity.CatalogItem {
	return []entity.CatalogItem{
		{
			ID:          "ai-receptionist",
			Name:        "AI Receptionist",
			Description: "Answers every call, books appointments and routes urgent requests 24/7.",
			Icon:        entity.IconPhone,
			SetupFee:    decimal.NewFromInt(997),
			Tiers:       tiers(197, 297, 497),
			Features: []string{
				"24/7 inbound call handling",
				"Calendar booking integration",
				"Call summaries by email",
				"Custom voice and script",
			},
		},
		{
			ID:          "customer-support-chat",
			Name:        "Customer Support Chat",
			Description: "Website chat agent trained on your FAQs, policies and services.",
			Icon:        entity.IconMessageSquare,
			SetupFee:    decimal.NewFromInt(797),
			Tiers:       tiers(147, 247, 397),
			Features: []string{
				"Trained on your knowledge base",
				"Human handoff",
				"Lead capture",
				"Monthly conversation reports",
			},
		},
		{
			ID:          "lead-qualifier",
			Name:        "Lead Qualifier",
			Description: "Scores and follows up with new leads within minutes of sign-up.",
			Icon:        entity.IconTarget,
			SetupFee:    decimal.NewFromInt(897),
			Tiers:       tiers(167, 267, 427),
			Features: []string{
				"Instant SMS and email follow-up",
				"Qualification scoring",
				"CRM sync",
			},
		},
		{
			ID:          "appointment-scheduler",
			Name:        "Appointment Scheduler",
			Description: "Books, confirms and reschedules appointments without back-and-forth.",
			Icon:        entity.IconCalendar,
			SetupFee:    decimal.NewFromInt(697),
			Tiers:       tiers(127, 197, 347),
			Features: []string{
				"Two-way calendar sync",
				"Automated reminders",
				"No-show recovery",
			},
		},
		{
			ID:          "review-manager",
			Name:        "Review Manager",
			Description: "Requests reviews after every job and drafts replies to new ones.",
			Icon:        entity.IconStar,
			SetupFee:    decimal.NewFromInt(497),
			Tiers:       tiers(97, 147, 247),
			Features: []string{
				"Post-service review requests",
				"AI-drafted replies",
				"Reputation dashboard",
			},
		},
		{
			ID:          "social-media-agent",
			Name:        "Social Media Agent",
			Description: "Plans, writes and schedules posts across your social channels.",
			Icon:        entity.IconShare2,
			SetupFee:    decimal.NewFromInt(897),
			Tiers:       tiers(197, 297, 447),
			Features: []string{
				"Content calendar",
				"Brand-voice copywriting",
				"Multi-platform scheduling",
			},
		},
	}
}

func defaultBundles() []entity.Bundle {
	return []entity.Bundle{
		{
			ID:            "growth-bundle",
			Name:          "Growth Bundle",
			Description:   "Capture and convert more leads.",
			Icon:          entity.IconRocket,
			SetupFee:      decimal.NewFromInt(1997),
			MonthlyFee:    decimal.NewFromInt(597),
			AutomationIDs: []string{"lead-qualifier", "customer-support-chat", "review-manager"},
			Features:      []string{"3 automations", "Priority onboarding", "Quarterly strategy call"},
		},
		{
			ID:            "operations-bundle",
			Name:          "Operations Bundle",
			Description:   "Take calls and scheduling off your plate.",
			Icon:          entity.IconZap,
			SetupFee:      decimal.NewFromInt(2497),
			MonthlyFee:    decimal.NewFromInt(797),
			AutomationIDs: []string{"ai-receptionist", "appointment-scheduler", "customer-support-chat"},
			Features:      []string{"3 automations", "Shared call and chat inbox", "Monthly optimization"},
		},
		{
			ID:            "complete-ai-suite",
			Name:          "Complete AI Suite",
			Description:   "Every automation, fully managed.",
			Icon:          entity.IconLayers,
			SetupFee:      decimal.NewFromInt(3997),
			MonthlyFee:    decimal.NewFromInt(1297),
			AutomationIDs: []string{"ai-receptionist", "customer-support-chat", "lead-qualifier", "appointment-scheduler", "review-manager", "social-media-agent"},
			Features:      []string{"All 6 automations", "Dedicated success manager", "Custom integrations"},
		},
	}
}
