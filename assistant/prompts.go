package assistant

import (
	"fmt"
	"strings"

	models "inventory-dashboard/model"
)

func descriptionPrompt(productName, keywords string) string {
	return fmt.Sprintf(`Rédige une description de produit marketing convaincante pour un site e-commerce. La description doit être optimisée pour le SEO, mettre en avant les bénéfices pour le client, et inclure des listes à puces pour les caractéristiques clés.

Nom du produit: %s
Mots-clés: %s

Structure ta réponse comme suit:
- Un paragraphe d'introduction accrocheur.
- Une liste à puces des caractéristiques et avantages.
- Un paragraphe de conclusion qui incite à l'achat.

Rédige en français. Retourne uniquement la description, sans texte additionnel.`, productName, keywords)
}

func forecastPrompt(products []models.Product, recent []models.Order) string {
	productLines := make([]string, len(products))
	for i, p := range products {
		productLines[i] = fmt.Sprintf("- %s (Stock: %d)", p.Name, p.Stock)
	}
	orderLines := make([]string, len(recent))
	for i, o := range recent {
		items := make([]string, len(o.Items))
		for j, it := range o.Items {
			items[j] = fmt.Sprintf("%d x ProduitID %s", it.Quantity, it.ProductID)
		}
		orderLines[i] = fmt.Sprintf("Commande %s: %s", o.ID, strings.Join(items, ", "))
	}

	return fmt.Sprintf(`En tant qu'analyste expert en chaîne d'approvisionnement e-commerce, analyse les données suivantes.
Identifie les 3 produits les plus susceptibles d'être en rupture de stock au cours du mois prochain en te basant sur le stock actuel et les ventes récentes.
Pour chaque produit, explique brièvement pourquoi en une phrase.

Données produits (Stock actuel):
%s

Données commandes (Ventes des 30 derniers jours):
%s

Fournis ta réponse sous forme de liste à puces.
Retourne uniquement la liste, sans texte d'introduction ou de conclusion.`,
		strings.Join(productLines, "\n"), strings.Join(orderLines, "\n"))
}

func summaryPrompt(orders []models.Order) string {
	lines := make([]string, len(orders))
	for i, o := range orders {
		lines[i] = fmt.Sprintf("ID: %s, Date: %s, Status: %s, Total: %s DZD, Client: %s",
			o.ID, o.Date.UTC().Format("2006-01-02T15:04:05Z07:00"), o.Status.Label(), o.Total.StringFixed(2), o.CustomerName)
	}

	return fmt.Sprintf(`En tant qu'assistant e-commerce, résume les données de commandes suivantes.
Mets en évidence le nombre total de commandes, le revenu total, et le statut le plus fréquent des commandes.
Sois concis et professionnel.

Données commandes:
%s

Réponds en français sous forme de liste à puces.
Retourne uniquement la liste, sans texte d'introduction ou de conclusion.`, strings.Join(lines, "\n"))
}
