// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package catalog

import "github.com/olegiv/estofamais/internal/model"

func ptr[T any](v T) *T { return &v }

// SeedData returns the demo content the site starts with.
func SeedData() Data {
	return Data{
		Materials: seedMaterials(),
		Gallery:   seedGallery(),
		Services:  seedServices(),
		Posts:     seedPosts(),
		Comments:  seedComments(),
		Quotes:    seedQuotes(),
		Settings: model.Settings{
			BusinessName: "Estofamais",
			Phone:        "(11) 3456-7890",
			WhatsApp:     "+55 11 98765-4321",
			Email:        "contato@estofamais.com",
			Address:      "Rua das Flores, 123 - Centro, São Paulo - SP",
			OpeningHours: "Seg a Sex: 8h às 18h | Sáb: 8h às 12h",
		},
	}
}

func seedMaterials() []model.Material {
	return []model.Material{
		{ID: 1, Title: "Couro Natural", Description: "Couro bovino legítimo, resistente e elegante, ideal para sofás e poltronas.", Price: 280, ImageURL: "https://images.unsplash.com/photo-1524758631624-e2822e304c36", Color: "Marrom", Type: "Couro"},
		{ID: 2, Title: "Couro Ecológico", Description: "Material sintético de fácil limpeza com aparência de couro.", Price: 120, ImageURL: "https://images.unsplash.com/photo-1555041469-a586c61ea9bc", Color: "Preto", Type: "Couro"},
		{ID: 3, Title: "Veludo", Description: "Tecido macio e sofisticado, com toque aveludado e cores intensas.", Price: 95, ImageURL: "https://images.unsplash.com/photo-1493663284031-b7e3aefcae8e", Color: "Verde", Type: "Tecido"},
		{ID: 4, Title: "Linho", Description: "Tecido natural, fresco e respirável, perfeito para ambientes claros.", Price: 110, ImageURL: "https://images.unsplash.com/photo-1540574163026-643ea20ade25", Color: "Bege", Type: "Tecido"},
		{ID: 5, Title: "Suede", Description: "Tecido com textura de camurça, confortável e resistente ao uso diário.", Price: 85, ImageURL: "https://images.unsplash.com/photo-1550254478-ead40cc54513", Color: "Cinza", Type: "Tecido"},
		{ID: 6, Title: "Chenille", Description: "Tecido encorpado e durável, com fios torcidos de toque suave.", Price: 78, ImageURL: "https://images.unsplash.com/photo-1586023492125-27b2c045efd7", Color: "Azul", Type: "Tecido"},
		{ID: 7, Title: "Tecido Impermeável", Description: "Tecido tratado contra líquidos e manchas, ideal para casas com crianças e pets.", Price: 130, ImageURL: "https://images.unsplash.com/photo-1567016432779-094069958ea5", Color: "Cinza", Type: "Tecnológico"},
	}
}

func seedGallery() []model.GalleryImage {
	return []model.GalleryImage{
		{ID: 1, Src: "https://images.unsplash.com/photo-1555041469-a586c61ea9bc", Alt: "Sofá reformado em couro", Category: "Sofás", Materials: []string{"Couro Natural"}, Title: "Sofá Retrátil em Couro", Color: ptr("Marrom"), Price: ptr(3200.0)},
		{ID: 2, Src: "https://images.unsplash.com/photo-1493663284031-b7e3aefcae8e", Alt: "Poltrona em veludo verde", Category: "Poltronas", Materials: []string{"Veludo"}, Title: "Poltrona Bergère em Veludo", Color: ptr("Verde"), Price: ptr(1450.0)},
		{ID: 3, Src: "https://images.unsplash.com/photo-1540574163026-643ea20ade25", Alt: "Sofá de linho bege", Category: "Sofás", Materials: []string{"Linho"}, Title: "Sofá 3 Lugares em Linho", Color: ptr("Bege"), Price: ptr(2600.0)},
		{ID: 4, Src: "https://images.unsplash.com/photo-1503602642458-232111445657", Alt: "Cadeiras de jantar estofadas", Category: "Cadeiras", Materials: []string{"Suede"}, Title: "Jogo de Cadeiras de Jantar", Color: ptr("Cinza")},
		{ID: 5, Src: "https://images.unsplash.com/photo-1505693416388-ac5ce068fe85", Alt: "Cabeceira estofada", Category: "Cabeceiras", Materials: []string{"Veludo", "Chenille"}, Title: "Cabeceira Capitonê", Price: ptr(980.0)},
		{ID: 6, Src: "https://images.unsplash.com/photo-1567016432779-094069958ea5", Alt: "Sofá com tecido impermeável", Category: "Sofás", Materials: []string{"Tecido Impermeável"}, Title: "Sofá Pet Friendly", Color: ptr("Cinza"), Price: ptr(2900.0)},
		{ID: 7, Src: "https://images.unsplash.com/photo-1598300042247-d088f8ab3a91", Alt: "Banco automotivo em couro", Category: "Automotivo", Materials: []string{"Couro Ecológico"}, Title: "Bancos Automotivos", Color: ptr("Preto"), Price: ptr(1800.0)},
		{ID: 8, Src: "https://images.unsplash.com/photo-1586023492125-27b2c045efd7", Alt: "Puff em chenille azul", Category: "Puffs", Materials: []string{"Chenille"}, Title: "Puff Redondo", Color: ptr("Azul"), Price: ptr(350.0)},
	}
}

func seedServices() []model.Service {
	return []model.Service{
		{ID: 1, Title: "Reforma de Sofás", Description: "Troca de espuma, molas, percintas e tecido, devolvendo conforto e beleza ao seu sofá.", Icon: "sofa", Features: []string{"Troca de espuma", "Substituição de molas", "Novo revestimento"}, PriceFrom: ptr(800.0)},
		{ID: 2, Title: "Restauração de Poltronas", Description: "Recuperação de estrutura e estofamento de poltronas clássicas e modernas.", Icon: "armchair", Features: []string{"Reparo de estrutura", "Capitonê", "Acabamento artesanal"}, PriceFrom: ptr(450.0)},
		{ID: 3, Title: "Cadeiras e Bancos", Description: "Estofamento de cadeiras de jantar, bancos e banquetas.", Icon: "chair", Features: []string{"Assentos e encostos", "Tecidos resistentes"}, PriceFrom: ptr(120.0)},
		{ID: 4, Title: "Impermeabilização", Description: "Proteção contra líquidos e manchas para estofados novos e usados.", Icon: "shield", Features: []string{"Proteção contra manchas", "Secagem rápida"}},
		{ID: 5, Title: "Estofamento Automotivo", Description: "Reforma de bancos, forros de porta e tetos de veículos.", Icon: "car", Features: []string{"Bancos", "Forros de porta", "Teto"}, PriceFrom: ptr(600.0)},
	}
}

func seedPosts() []model.BlogPost {
	return []model.BlogPost{
		{
			ID: 1, Title: "Como escolher o tecido ideal para seu sofá",
			Excerpt: "Conheça as características de cada tecido e descubra qual combina com a sua rotina.",
			Content: "## Pense no uso\n\nCasas com crianças e pets pedem tecidos **resistentes** e de fácil limpeza, como o suede e os tecidos impermeáveis.\n\n## Considere o ambiente\n\nAmbientes ensolarados desbotam cores intensas. Prefira tons neutros como o linho bege.\n\n- Suede: confortável e durável\n- Veludo: sofisticado\n- Linho: fresco e natural",
			Date:    "10 de Março, 2024", Author: "Equipe Estofamais", Category: "Dicas",
			Image: "https://images.unsplash.com/photo-1555041469-a586c61ea9bc", Likes: []int64{},
		},
		{
			ID: 2, Title: "Quando vale a pena reformar em vez de comprar",
			Excerpt: "Uma boa estrutura de madeira pode durar décadas. Veja quando a reforma é a melhor escolha.",
			Content: "Sofás com estrutura de madeira maciça costumam valer a reforma. Troque a espuma e o tecido e tenha um móvel **novo** por uma fração do preço.\n\n1. Verifique a estrutura\n2. Avalie as molas\n3. Escolha o novo revestimento",
			Date:    "25 de Fevereiro, 2024", Author: "Carlos Mendes", Category: "Reforma",
			Image: "https://images.unsplash.com/photo-1493663284031-b7e3aefcae8e", Likes: []int64{},
		},
		{
			ID: 3, Title: "Cuidados com estofados de couro",
			Excerpt: "Limpeza e hidratação corretas mantêm o couro bonito por muitos anos.",
			Content: "Limpe com pano levemente úmido e hidrate a cada seis meses com produto próprio para couro. Evite exposição direta ao sol.",
			Date:    "12 de Janeiro, 2024", Author: "Ana Souza", Category: "Manutenção",
			Image: "https://images.unsplash.com/photo-1524758631624-e2822e304c36", Likes: []int64{},
		},
	}
}

func seedComments() []model.Comment {
	return []model.Comment{
		{ID: 1, PostID: 1, UserID: 0, UserName: "Juliana", Content: "Ótimas dicas! Escolhi suede por causa do meu cachorro.", Date: "11/03/2024"},
		{ID: 2, PostID: 1, UserID: 0, UserName: "Roberto", Content: "O linho amassa muito?", Date: "12/03/2024"},
		{ID: 3, PostID: 2, UserID: 0, UserName: "Visitante", Content: "Propaganda de outra loja aqui...", Date: "01/03/2024", IsHidden: true},
	}
}

func seedQuotes() []model.Quote {
	return []model.Quote{
		{ID: 1, Name: "Fernanda Lima", Email: "fernanda@example.com", Phone: "(11) 99876-5432", ServiceType: "Reforma de Sofás", Material: "Veludo", Color: "Verde", Description: "Sofá de 3 lugares com espuma baixa e tecido desgastado.", Date: "14/03/2024", Status: model.QuoteStatusPending, Images: []string{}},
		{ID: 2, Name: "Paulo Costa", Email: "paulo@example.com", Phone: "(11) 97654-3210", ServiceType: "Restauração de Poltronas", Material: "Couro Natural", Color: "Marrom", Description: "Par de poltronas antigas com estrutura solta.", Date: "02/03/2024", Status: model.QuoteStatusContacted, Images: []string{}},
	}
}
