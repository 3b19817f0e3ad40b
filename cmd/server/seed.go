package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gulftrading/gtg-api/internal/config"
	"github.com/gulftrading/gtg-api/internal/domain"
	"github.com/gulftrading/gtg-api/internal/platform/postgres"
	"github.com/gulftrading/gtg-api/internal/service/auth"
	"github.com/gulftrading/gtg-api/internal/store"
)

// runSeed bootstraps a fresh database with the admin user and a sample
// catalog so a new deployment is usable without hand-written SQL.
func runSeed(ctx context.Context, cfg *config.Config, db *sql.DB, logger *slog.Logger) error {
	return seedData(
		ctx,
		postgres.NewPostgresUserStore(db, logger),
		postgres.NewPostgresProductStore(db, logger),
		postgres.NewPostgresServiceStore(db, logger),
		auth.NewBcryptHasher(),
		cfg.Admin,
		logger,
	)
}

// seedData is idempotent: the admin is skipped when the email is already
// registered, and catalog entries are skipped on slug collisions.
func seedData(
	ctx context.Context,
	users store.UserStore,
	products store.ProductStore,
	services store.ServiceStore,
	hasher auth.PasswordHasher,
	admin config.AdminConfig,
	logger *slog.Logger,
) error {
	if admin.Password == "" {
		return errors.New("admin password is required for seeding (set GTG_ADMIN_PASSWORD)")
	}

	user, err := domain.NewUser("Gulf Trading Admin", admin.Email, admin.Password)
	if err != nil {
		return fmt.Errorf("invalid admin credentials: %w", err)
	}
	user.Role = domain.RoleAdmin
	user.Company = "Gulf Trading Group"

	hash, err := hasher.Hash(user.Password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}
	user.HashedPassword = hash
	user.Password = ""

	switch err := users.Create(ctx, user); {
	case err == nil:
		logger.Info("Admin user created", "email", user.Email)
	case errors.Is(err, store.ErrEmailExists):
		logger.Info("Admin user already exists, skipping", "email", user.Email)
	default:
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	createdProducts := 0
	for _, seed := range sampleProducts {
		p, err := domain.NewProduct(seed.name, seed.category, seed.description)
		if err != nil {
			return fmt.Errorf("invalid sample product %q: %w", seed.name, err)
		}
		p.Image = seed.image
		p.Brand = seed.brand
		p.Model = seed.model
		p.Specifications = seed.specifications
		p.Featured = seed.featured

		if err := products.Create(ctx, p); err != nil {
			if errors.Is(err, store.ErrSlugExists) {
				continue
			}
			return fmt.Errorf("failed to seed product %q: %w", seed.name, err)
		}
		createdProducts++
	}
	logger.Info("Sample products seeded", "created", createdProducts)

	createdServices := 0
	for _, seed := range sampleServices {
		s, err := domain.NewService(seed.title, seed.category, seed.description)
		if err != nil {
			return fmt.Errorf("invalid sample service %q: %w", seed.title, err)
		}
		s.LongDescription = seed.longDescription
		s.Features = seed.features
		s.Benefits = seed.benefits
		s.Featured = seed.featured

		if err := services.Create(ctx, s); err != nil {
			if errors.Is(err, store.ErrSlugExists) {
				continue
			}
			return fmt.Errorf("failed to seed service %q: %w", seed.title, err)
		}
		createdServices++
	}
	logger.Info("Sample services seeded", "created", createdServices)

	return nil
}

type productSeed struct {
	name           string
	category       domain.ProductCategory
	description    string
	image          string
	brand          string
	model          string
	specifications []string
	featured       bool
}

var sampleProducts = []productSeed{
	{
		name:           "HD Security Camera System",
		category:       domain.CategorySecurityCameras,
		description:    "Advanced surveillance with 4K resolution and night vision capabilities",
		image:          "📹",
		brand:          "Hikvision",
		specifications: []string{"4K Resolution", "Night Vision", "Motion Detection", "Remote Access"},
		featured:       true,
	},
	{
		name:           "Enterprise Laptop - Dell Latitude",
		category:       domain.CategoryLaptops,
		description:    "High-performance business laptops for professional use",
		image:          "💻",
		brand:          "Dell",
		model:          "Latitude 7430",
		specifications: []string{"Intel Core i7", "16GB RAM", "512GB SSD", "14\" Display"},
		featured:       true,
	},
	{
		name:           "HP Workstation PC",
		category:       domain.CategoryPCs,
		description:    "Powerful workstations for demanding applications",
		image:          "🖥️",
		brand:          "HP",
		specifications: []string{"Intel Xeon Processor", "32GB RAM", "1TB SSD", "NVIDIA Graphics"},
		featured:       true,
	},
	{
		name:           "Dell PowerEdge Rack Server",
		category:       domain.CategoryServers,
		description:    "Enterprise-grade servers for data centers",
		image:          "🖲️",
		brand:          "Dell",
		model:          "PowerEdge R750",
		specifications: []string{"Dual Xeon Processors", "128GB RAM", "Hot-swap Drives", "Redundant PSU"},
		featured:       true,
	},
	{
		name:           "Cisco Catalyst Switch",
		category:       domain.CategorySwitches,
		description:    "High-speed managed switches for network infrastructure",
		image:          "🔌",
		brand:          "Cisco",
		model:          "Catalyst 9300",
		specifications: []string{"48 Ports", "Layer 3", "PoE+", "Stackable"},
	},
	{
		name:           "42U Server Rack Cabinet",
		category:       domain.CategoryRacks,
		description:    "Professional-grade server racks and cabinets",
		image:          "🗄️",
		specifications: []string{"42U Height", "Lockable Doors", "Cable Management", "Ventilation"},
	},
	{
		name:           "HP LaserJet Enterprise Printer",
		category:       domain.CategoryPrinters,
		description:    "Multi-function printers for office environments",
		image:          "🖨️",
		brand:          "HP",
		model:          "LaserJet Enterprise M608",
		specifications: []string{"Laser Printing", "Duplex", "Network Ready", "High Capacity"},
	},
	{
		name:           "Network Cable & Accessories Kit",
		category:       domain.CategoryOther,
		description:    "Cat6 cables, RJ45 connectors, and network tools",
		image:          "📦",
		specifications: []string{"Cat6 Certified", "Various Lengths", "Professional Grade"},
	},
}

type serviceSeed struct {
	title           string
	category        domain.ServiceCategory
	description     string
	longDescription string
	features        []string
	benefits        []string
	featured        bool
}

var sampleServices = []serviceSeed{
	{
		title:           "IT Consultation",
		category:        domain.ServiceCategoryConsultation,
		description:     "Expert guidance on technology strategy, infrastructure planning, and digital transformation for your enterprise.",
		longDescription: "Our IT consultation services provide comprehensive analysis of your current infrastructure, strategic planning for technology adoption, and expert recommendations tailored to your business needs.",
		features: []string{
			"Technology Strategy Development",
			"Infrastructure Assessment",
			"Digital Transformation Planning",
			"Vendor Selection & Management",
		},
		benefits: []string{
			"Reduced IT Costs",
			"Improved Efficiency",
			"Better Technology Alignment",
			"Risk Mitigation",
		},
		featured: true,
	},
	{
		title:           "Network Installation",
		category:        domain.ServiceCategoryInstallation,
		description:     "Professional design, deployment, and configuration of complete network infrastructure solutions.",
		longDescription: "From planning to implementation, our network installation services ensure your infrastructure is built to the highest standards, from cabling to configuration.",
		features: []string{
			"Network Design & Planning",
			"Structured Cabling Installation",
			"Switch & Router Configuration",
			"Wireless Network Deployment",
		},
		benefits: []string{
			"Reliable Connectivity",
			"Scalable Infrastructure",
			"Optimal Performance",
		},
		featured: true,
	},
	{
		title:           "IT Support & Maintenance",
		category:        domain.ServiceCategorySupport,
		description:     "Ongoing technical support and proactive maintenance to keep your systems running smoothly.",
		longDescription: "Our support team monitors, maintains, and troubleshoots your infrastructure so issues are resolved before they disrupt your business.",
		features: []string{
			"Help Desk Support",
			"Preventive Maintenance",
			"System Monitoring",
			"Hardware Repair & Replacement",
		},
		benefits: []string{
			"Minimized Downtime",
			"Predictable IT Costs",
			"Expert Assistance On Demand",
		},
	},
}
