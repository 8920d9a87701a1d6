package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	consentApp "github.com/davicafu/consentlab/internal/consent/application"
	consentDomain "github.com/davicafu/consentlab/internal/consent/domain"
	consentFixtures "github.com/davicafu/consentlab/internal/consent/infra/outbound/fixtures"
	documentApp "github.com/davicafu/consentlab/internal/document/application"
	documentDomain "github.com/davicafu/consentlab/internal/document/domain"
	documentFixtures "github.com/davicafu/consentlab/internal/document/infra/outbound/fixtures"
	referralApp "github.com/davicafu/consentlab/internal/referral/application"
	referralDomain "github.com/davicafu/consentlab/internal/referral/domain"
	referralFixtures "github.com/davicafu/consentlab/internal/referral/infra/outbound/fixtures"
	sharedDomain "github.com/davicafu/consentlab/internal/shared/domain"
	"github.com/davicafu/consentlab/internal/shared/platform/listview"
	"github.com/davicafu/consentlab/internal/shared/platform/query"
	taskApp "github.com/davicafu/consentlab/internal/task/application"
	taskDomain "github.com/davicafu/consentlab/internal/task/domain"
	taskFixtures "github.com/davicafu/consentlab/internal/task/infra/outbound/fixtures"
	"github.com/davicafu/consentlab/pkg/logger"
)

func newApplicationsCmd() *cobra.Command {
	var f listFlags
	cmd := &cobra.Command{
		Use:     "applications",
		Aliases: []string{"apps"},
		Short:   "List consent applications",
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo, err := consentFixtures.NewApplicationRepo()
			if err != nil {
				return err
			}
			service := consentApp.NewApplicationService(repo, logger.Logger())

			var criterias []sharedDomain.Criteria
			if f.status != "" {
				st, err := consentDomain.ParseStatus(f.status)
				if err != nil {
					return err
				}
				criterias = append(criterias, consentDomain.StatusCriteria{Statuses: []consentDomain.Status{st}})
			}
			if f.search != "" {
				criterias = append(criterias, consentDomain.SearchCriteria(f.search))
			}

			return view[consentDomain.Application]{
				list: func(cmd *cobra.Command, q query.ListQuery) (listview.PageResult[consentDomain.Application], error) {
					return service.ListApplications(cmd.Context(), q)
				},
				stats:   statsOf(service.Stats),
				headers: []string{"REFERENCE", "ADDRESS", "APPLICANT", "STATUS", "DEPARTMENT", "LODGED"},
				row: func(a consentDomain.Application) []string {
					return []string{a.Reference, a.Address, a.Applicant, string(a.Status), a.Department, date(a.LodgedAt)}
				},
			}.run(cmd, f, sharedDomain.And(criterias...))
		},
	}
	addListFlags(cmd, &f, "filter by status (lodged, pending, in review, approved, declined, withdrawn)")
	return cmd
}

func newReferralsCmd() *cobra.Command {
	var f listFlags
	cmd := &cobra.Command{
		Use:   "referrals",
		Short: "List internal referrals",
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo, err := referralFixtures.NewReferralRepo()
			if err != nil {
				return err
			}
			service := referralApp.NewReferralService(repo, time.Now, logger.Logger())

			var criterias []sharedDomain.Criteria
			if f.status != "" {
				st, err := referralDomain.ParseStatus(f.status)
				if err != nil {
					return err
				}
				criterias = append(criterias, referralDomain.StatusCriteria{Status: st})
			}
			if f.search != "" {
				criterias = append(criterias, referralDomain.SearchCriteria(f.search))
			}

			return view[referralDomain.Referral]{
				list: func(cmd *cobra.Command, q query.ListQuery) (listview.PageResult[referralDomain.Referral], error) {
					return service.ListReferrals(cmd.Context(), q)
				},
				stats:   statsOf(service.Stats),
				headers: []string{"APPLICATION", "DEPARTMENT", "STATUS", "ASSIGNED TO", "DUE"},
				row: func(r referralDomain.Referral) []string {
					return []string{r.ApplicationRef, r.Department, string(r.Status), r.AssignedTo, date(r.DueDate)}
				},
			}.run(cmd, f, sharedDomain.And(criterias...))
		},
	}
	addListFlags(cmd, &f, "filter by status (requested, in progress, responded, closed)")
	return cmd
}

func newDocumentsCmd() *cobra.Command {
	var (
		f              listFlags
		classification string
	)
	cmd := &cobra.Command{
		Use:     "documents",
		Aliases: []string{"docs"},
		Short:   "List the document register",
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo, err := documentFixtures.NewDocumentRepo()
			if err != nil {
				return err
			}
			service := documentApp.NewDocumentService(repo, nil, nil, time.Now, logger.Logger())

			var criterias []sharedDomain.Criteria
			if classification != "" {
				class, err := documentDomain.ParseClassification(classification)
				if err != nil {
					return err
				}
				criterias = append(criterias, documentDomain.ClassificationCriteria{Classification: class})
			}
			if f.search != "" {
				criterias = append(criterias, documentDomain.NameLikeCriteria{Name: f.search})
			}

			return view[documentDomain.Document]{
				list: func(cmd *cobra.Command, q query.ListQuery) (listview.PageResult[documentDomain.Document], error) {
					return service.ListDocuments(cmd.Context(), q)
				},
				stats:   statsOf(service.Stats),
				headers: []string{"NAME", "CLASSIFICATION", "APPLICATION", "UPLOADED BY", "SIZE"},
				row: func(d documentDomain.Document) []string {
					return []string{d.Name, string(d.Classification), d.ApplicationRef, d.UploadedBy, strconv.FormatInt(d.SizeBytes, 10)}
				},
			}.run(cmd, f, sharedDomain.And(criterias...))
		},
	}
	addListFlags(cmd, &f, "")
	cmd.Flags().StringVar(&classification, "classification", "", "filter by classification (plans, reports, photos...)")
	return cmd
}

func newTasksCmd() *cobra.Command {
	var f listFlags
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List kanban tasks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo, err := taskFixtures.NewTaskRepo()
			if err != nil {
				return err
			}
			service := taskApp.NewTaskService(repo, nil, nil, time.Now, logger.Logger())

			var criterias []sharedDomain.Criteria
			if f.status != "" {
				col, err := taskDomain.ParseColumn(f.status)
				if err != nil {
					return err
				}
				criterias = append(criterias, taskDomain.ColumnCriteria{Columns: []taskDomain.Column{col}})
			}
			if f.search != "" {
				criterias = append(criterias, taskDomain.SearchCriteria(f.search))
			}

			return view[taskDomain.Task]{
				list: func(cmd *cobra.Command, q query.ListQuery) (listview.PageResult[taskDomain.Task], error) {
					return service.ListTasks(cmd.Context(), q)
				},
				stats:   statsOf(service.Stats),
				headers: []string{"TITLE", "APPLICATION", "ASSIGNEE", "COLUMN", "PRIORITY", "DUE"},
				row: func(t taskDomain.Task) []string {
					return []string{t.Title, t.ApplicationRef, t.Assignee, string(t.Column), string(t.Priority), date(t.DueDate)}
				},
			}.run(cmd, f, sharedDomain.And(criterias...))
		},
	}
	addListFlags(cmd, &f, "filter by board column (todo, in_progress, review, done)")
	return cmd
}

type statsFunc func(ctx context.Context, criteria sharedDomain.Criteria, field string) ([]listview.Count[string], error)

func statsOf(fn statsFunc) func(*cobra.Command, sharedDomain.Criteria, string) ([]listview.Count[string], error) {
	return func(cmd *cobra.Command, criteria sharedDomain.Criteria, field string) ([]listview.Count[string], error) {
		counts, err := fn(cmd.Context(), criteria, field)
		if err != nil {
			return nil, fmt.Errorf("group by %s: %w", field, err)
		}
		return counts, nil
	}
}
