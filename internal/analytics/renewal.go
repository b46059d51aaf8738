package analytics

import (
	"fmt"
	"sort"
	"time"

	"example.com/subscription-tracker/backend/internal/models"
)

const renewalHorizonDays = 60

// ClusterRenewals группирует продления ближайших 60 дней по неделям.
// Подписки без даты продления пропускаются.
func ClusterRenewals(subs []models.SubscriptionRecord, now time.Time) RenewalClustering {
	today := truncateToDay(now)

	byWeek := make(map[int]*RenewalCluster)
	var weeks []int

	for _, sub := range subs {
		if sub.RenewalDate == nil {
			continue
		}

		renewal := truncateToDay(*sub.RenewalDate)
		daysUntil := daysBetween(today, renewal)
		if daysUntil < 0 || daysUntil > renewalHorizonDays {
			continue
		}

		week := (daysUntil + 6) / 7
		if week < 1 {
			week = 1
		}

		cluster, ok := byWeek[week]
		if !ok {
			cluster = &RenewalCluster{Week: week, Label: fmt.Sprintf("Week %d", week)}
			byWeek[week] = cluster
			weeks = append(weeks, week)
		}

		cluster.Members = append(cluster.Members, RenewalMember{
			ID:          sub.ID,
			Name:        sub.Name,
			RenewalDate: renewal,
		})
		cluster.Count++
	}

	clusters := make([]RenewalCluster, 0, len(weeks))
	for _, week := range weeks {
		clusters = append(clusters, *byWeek[week])
	}

	sort.SliceStable(clusters, func(i, j int) bool {
		if clusters[i].Count != clusters[j].Count {
			return clusters[i].Count > clusters[j].Count
		}
		return clusters[i].Week < clusters[j].Week
	})

	return RenewalClustering{UpcomingClusters: clusters}
}
