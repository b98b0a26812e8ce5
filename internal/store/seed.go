// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// seed.go provides the starter catalogue loaded at boot so the site has a
// full front page before the first generated article lands.
package store

import (
	"fmt"
	"strings"
	"time"

	"worldpulse/internal/models"
	"worldpulse/internal/slug"
)

// seedTitles lists the starter headlines per desk. The first title of each
// desk is featured.
var seedTitles = map[models.Category][]string{
	models.CategoryWorld: {
		"The Arctic Corridor: New Sovereignty Disputes",
		"Amazon Basin: Reforestation Milestones Reached",
		"Pacific Island Resilience: The Zero-Waste Model",
		"Sub-Saharan Tech Hubs: Africa’s Silicon Savannah",
		"Antarctic Research: Sub-Glacial Lake Discoveries",
		"Central Asian Logistics: The Middle Corridor Surge",
		"Nordic Defence: A Unified Strategic Command",
		"Mekong Delta: Climate-Adaptive Farming Shift",
		"Mediterranean Trade: The Return of Maritime Prowess",
		"Himalayan Hydropower: The Regional Energy Grid",
		"Latin American Lithium: The Mining Revolution",
		"Oceanic Governance: Protecting International Waters",
		"Trans-Atlantic Relations: Strengthening the Pivot",
	},
	models.CategoryPolitics: {
		"Estonia’s e-Democracy: 10 Years of Progress",
		"EU Digital Markets Act: Phase 2 Implementation",
		"Decentralized Governance: The Swiss Canton Model",
		"Global Tax Reform: Closing the Loophole Gap",
		"The Future of Non-Aligned Movements",
		"Legislating AI: The First Binding Treaty",
		"Campaign Finance: The Rise of Micro-Donations",
		"Urban Autonomy: Cities as Political Actors",
		"Post-Populism: The Return of Technocracy",
		"Sovereignty in Space: Updating the Outer Space Treaty",
		"Cyber-Diplomacy: Deterrence in the Digital Age",
		"The Economics of Universal Basic Income Trials",
		"Global Electoral Integrity: Blockchain's Role",
	},
	models.CategoryBusiness: {
		"Semiconductor War: The New Vertical Integration",
		"The Silver Economy: Wealth in the Aging Sector",
		"Green Hydrogen: Scaling the Energy Transition",
		"De-Dollarization Trends in Emerging Markets",
		"The Future of Work: Fully Autonomous Enterprise",
		"Supply Chain 4.0: Predictive Logistics Mapping",
		"Venture Capital: The Pivot to Hard-Tech",
		"Retail Reborn: The Phygital Experience Model",
		"ESG 2.0: Moving Beyond Marketing Compliance",
		"Micro-SaaS: The Rise of Hyper-Focused Software",
		"Carbon Credits: Creating a Transparent Market",
		"Remote Work Real Estate: The Urban Hub Pivot",
		"Fintech Sovereignty: National Payment Gateways",
	},
	models.CategoryTechnology: {
		"Quantum Supremacy: Beyond the Hype Cycle",
		"6G Horizons: Terahertz Wave Communications",
		"Generative AI: The Copyright Crisis in Media",
		"Solid-State Batteries: The EV Breakthrough",
		"Edge Computing: The End of Cloud Centralization",
		"Augmented Reality: The Future of Remote Surgery",
		"Biotech Synergy: Computing with Neural Cells",
		"Cybersecurity: Defending Against LLM-Botnets",
		"Web3 Identity: Proof-of-Personhood Systems",
		"Robotics in Agtech: The Fully Automated Farm",
		"Privacy Tech: Zero-Knowledge Proofs at Scale",
		"Humanoid Bots: The Entry into the Home Lab",
		"Fusion Computing: Merging Silicon with Bio-Logic",
	},
	models.CategoryHealth: {
		"mRNA Oncology: Personalizing Cancer Vaccines",
		"Neuroplasticity: Reversing Cognitive Decline",
		"Longevity Science: Cellular Reprogramming",
		"Global Pandemic Preparedness: The Bio-Shield",
		"Mental Health Tech: AI-Driven CBT Assistants",
		"The Microbiome Frontier: Diet as Precision Medicine",
		"Telemedicine in Conflict Zones: Remote Care",
		"Synthetic Blood: Solving the Supply Crisis",
		"Genome Sequencing: Making it Accessible to All",
		"Sleep Optimization: The Science of High Performance",
		"Wearable Biosensors: Continuous Vital Monitoring",
		"Combating Antimicrobial Resistance: New Phage Therapy",
		"Brain-Computer Interfaces: Helping Paralyzed Patients",
	},
	models.CategoryScience: {
		"James Webb: Imaging the First Stars in the Universe",
		"Nuclear Fusion: The Net Energy Gain Record",
		"Dark Matter Detectors: Closing in on the WIMP",
		"Gravitational Waves: A New Window into Black Holes",
		"Mars Colonization: The Ethics of Bio-Contamination",
		"Quantum Biology: Photosynthesis Re-examined",
		"The Anthropocene: Formalizing a New Geological Epoch",
		"Deep Sea Mining: The Ecosystem Trade-off",
		"Exoplanet Atmospheres: Searching for Biosignatures",
		"Synthetic Life: Creating the First Minimal Cell",
		"The Future of Timekeeping: Optical Atomic Clocks",
		"Plasma Physics: Clean Energy from the Stars",
		"Mycology: The Secret Network of Forest Intelligence",
	},
	models.CategoryCulture: {
		"The AI Auteur: Algorithms in the Director’s Chair",
		"Virtual Museums: Digitizing Humanity’s Heritage",
		"Language Revitalization: AI Saving Native Tongues",
		"Post-Digital Minimalism: The Analog Renaissance",
		"Fashion 3.0: On-Demand 3D Printed Apparel",
		"The Economics of the Creator Class",
		"Brutalist Architecture: A Global Re-appreciation",
		"Gastro-Diplomacy: Food as a Soft Power Asset",
		"Immersive Theater: VR and the Stage",
		"The New Ethics of Social Media Curation",
		"Urban Soundscapes: The Science of City Noise",
		"Digital Nomad Visas: Changing the Map of Citizenship",
		"Cyber-Religions: The Spiritual Side of Tech",
	},
	models.CategorySports: {
		"Biomechanical Athletes: Data-Driven Performance",
		"The Global Expansion of Cricket: T20 Impact",
		"Women’s Professional Leagues: Valuation Surge",
		"The Ethics of Genetic Screening in Youth Sports",
		"Esports at the Olympics: The Road to 2028",
		"Sustainable Stadiums: Zero-Emission Venues",
		"The Rise of Padel: Global Participation Trends",
		"Formula 1: The Bio-Fuel Revolution",
		"Endurance Sports: Breaking the 2-Hour Marathon Barrier",
		"AI Coaching: Real-time Physiological Streaming",
		"The Mental Health Revolution in Professional Sport",
		"College Sports Nil: Changing the Amateur Landscape",
		"Adventure Racing: The Extreme Limit of Human Will",
	},
}

// SeedArticles builds the starter catalogue. Articles are spaced two hours
// apart going back from now, interleaved in desk order.
func SeedArticles(siteURL string, now time.Time) []models.Article {
	siteURL = strings.TrimRight(siteURL, "/")
	articles := make([]models.Article, 0, 104)
	i := 0
	for _, cat := range models.Categories() {
		for n, title := range seedTitles[cat] {
			articles = append(articles, seedArticle(siteURL, now, i, cat, title, n == 0))
			i++
		}
	}
	return articles
}

func seedArticle(siteURL string, now time.Time, i int, cat models.Category, title string, featured bool) models.Article {
	s := slug.Generate(title)
	lower := strings.ToLower(title)
	published := now.Add(-time.Duration(i) * 2 * time.Hour)
	content := seedContent(title, cat)
	return models.Article{
		ID:          fmt.Sprintf("art-%d", i),
		Title:       title,
		Subheadline: fmt.Sprintf("A comprehensive intelligence briefing on %s.", lower),
		Slug:        s,
		Excerpt: fmt.Sprintf("Expert analysis and real-time data on %s within the %s sector. "+
			"Our intelligence network identifies this as a critical inflection point for global policy.", lower, cat),
		Content:     content,
		Category:    cat,
		Image:       fmt.Sprintf("https://picsum.photos/seed/%d/1200/675", i+700),
		ImageAlt:    fmt.Sprintf("Strategic visualization of %s. Analysis of %s trends.", title, cat),
		Author:      models.DefaultAuthor,
		PublishedAt: published,
		UpdatedAt:   published,
		Tags:        []string{string(cat), "Intelligence", "Global", "Report", "Strategic"},
		ReadTime:    models.EstimateReadTime(content),
		FAQs: []models.FAQ{
			{
				Question: "Why is this trending?",
				Answer:   "Global interest in this sector has spiked due to recent regulatory shifts and strategic realignment among major world powers.",
			},
			{
				Question: "What is the projected outcome?",
				Answer:   "Initial modeling suggests a significant shift in resource allocation within the next 12-18 months.",
			},
		},
		PullQuote: fmt.Sprintf("The evolution of %s represents the fundamental bridge between contemporary policy and future stability.", lower),
		Featured:  featured,
		Meta: models.Meta{
			Description: fmt.Sprintf("In-depth investigation and strategic analysis of %s. Part of WorldPulse's global intelligence feed.", title),
			Keywords:    []string{string(cat), "Global News", "Analysis", "Strategic Intelligence", title},
			Canonical:   siteURL + "/article/" + s,
		},
	}
}

func seedContent(title string, cat models.Category) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Executive Summary\n")
	fmt.Fprintf(&b, "This report examines the strategic implications of %s for the %s desk. "+
		"With markets moving quickly, reliable intelligence matters more than ever.\n\n", title, cat)
	fmt.Fprintf(&b, "## Current Context\n")
	fmt.Fprintf(&b, "%s marks a turning point in how international actors approach the %s landscape. "+
		"Recent data points to a 15%% rise in direct engagement across the sector.\n\n", title, cat)
	fmt.Fprintf(&b, "## Key Developments\n")
	fmt.Fprintf(&b, "- **Strategic Realignment:** Organizations are moving toward resilient %s frameworks.\n", cat)
	fmt.Fprintf(&b, "- **Resource Allocation:** Capital is flowing into high-growth segments.\n")
	fmt.Fprintf(&b, "- **Regulatory Oversight:** New mandates are expected by Q3 2026.\n\n")
	fmt.Fprintf(&b, "## Editorial Insight\n")
	fmt.Fprintf(&b, "\"The pace of change in %s is unprecedented,\" says a lead analyst at WorldPulse. "+
		"\"Staying ahead takes synthesized insight, not just data.\"\n\n", cat)
	fmt.Fprintf(&b, "## Conclusion\n")
	fmt.Fprintf(&b, "The road ahead for %s is complex, but those who adapt early will hold the advantage in the next era of global competition.\n", title)
	return b.String()
}

// SeedTrends returns the starter trending list shown before the first poll.
func SeedTrends(now time.Time) []models.TrendingTopic {
	return []models.TrendingTopic{
		{ID: "t1", Topic: "Global Summit on AI Governance", Volume: "2.4M", Change: "+15%", Category: models.CategoryPolitics,
			Description: "World leaders gather in Geneva to discuss the first binding international treaty on artificial intelligence.", Timestamp: now},
		{ID: "t2", Topic: "Semiconductor Supply Chain Resilience", Volume: "1.8M", Change: "+5%", Category: models.CategoryBusiness,
			Description: "Major manufacturers pivot to diversified sourcing to avoid regional bottlenecks.", Timestamp: now},
		{ID: "t3", Topic: "Clean Energy Grid Integration", Volume: "950K", Change: "+12%", Category: models.CategoryScience,
			Description: "Breakthrough in battery storage technology enables 24/7 solar power for major metropolitan areas.", Timestamp: now},
		{ID: "t4", Topic: "The Future of Deep-Sea Exploration", Volume: "700K", Change: "+22%", Category: models.CategoryWorld,
			Description: "New submersible technology reaches the deepest point of the Java Trench.", Timestamp: now},
		{ID: "t5", Topic: "Advancements in Gene Editing Therapy", Volume: "500K", Change: "+8%", Category: models.CategoryHealth,
			Description: "First successful trial of in-vivo CRISPR therapy for hereditary blindness reported.", Timestamp: now},
		{ID: "t6", Topic: "Digital Sovereignty in the EU", Volume: "1.2M", Change: "+30%", Category: models.CategoryPolitics,
			Description: "New regulations aim to strengthen European control over data and cloud infrastructure.", Timestamp: now},
	}
}
