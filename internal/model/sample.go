package model

// SampleProducts is the fixed set written by the seed operation.
func SampleProducts() []Product {
	return []Product{
		{
			Name:        "Wireless Headphones",
			Category:    "Electronics",
			Price:       89.99,
			Stock:       15,
			Description: "Premium noise-canceling wireless headphones with 30 hours of battery life and comfortable over-ear design.",
			ImageURL:    "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=300&h=300&fit=crop",
		},
		{
			Name:        "Smart Watch",
			Category:    "Electronics",
			Price:       199.99,
			Stock:       8,
			Description: "Track your fitness goals, receive notifications, and more with this water-resistant smart watch.",
			ImageURL:    "https://images.unsplash.com/photo-1523275335684-37898b6baf30?w=300&h=300&fit=crop",
		},
		{
			Name:        "Yoga Mat",
			Category:    "Fitness",
			Price:       29.95,
			Stock:       20,
			Description: "Non-slip, eco-friendly yoga mat perfect for all types of yoga and floor exercises.",
			ImageURL:    "https://images.unsplash.com/photo-1518611012118-696072aa579a?w=300&h=300&fit=crop",
		},
		{
			Name:        "Coffee Maker",
			Category:    "Kitchen",
			Price:       59.99,
			Stock:       12,
			Description: "Programmable coffee maker with 12-cup capacity and auto-shutoff feature.",
			ImageURL:    "https://images.unsplash.com/photo-1495474472287-4d71bcdd2085?w=300&h=300&fit=crop",
		},
		{
			Name:        "Desk Lamp",
			Category:    "Office",
			Price:       34.50,
			Stock:       25,
			Description: "Adjustable LED desk lamp with multiple brightness levels and color temperatures.",
			ImageURL:    "https://images.unsplash.com/photo-1534282033039-bd5fb7023633?w=300&h=300&fit=crop",
		},
		{
			Name:        "Backpack",
			Category:    "Sports",
			Price:       49.95,
			Stock:       18,
			Description: "Durable, water-resistant backpack with multiple compartments and laptop sleeve.",
			ImageURL:    "https://images.unsplash.com/photo-1553062407-98eeb64c6a62?w=300&h=300&fit=crop",
		},
	}
}
