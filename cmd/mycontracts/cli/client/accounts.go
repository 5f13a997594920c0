package client

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mwantia/mycontracts/internal/app"
	"github.com/mwantia/mycontracts/pkg/models"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
)

func NewAccountsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Manage email and bank accounts",
		Long:  "Manage the mailboxes and bank accounts the backend imports documents and transactions from.",
	}

	cmd.AddCommand(newEmailCommand())
	cmd.AddCommand(newBankCommand())

	return cmd
}

func newEmailCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "email",
		Short: "Manage email accounts",
	}

	list := &cobra.Command{
		Use:   "ls",
		Short: "List email accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App) error {
				accounts, err := a.Client().ListEmailAccounts(cmd.Context())
				if err != nil {
					return err
				}

				return render(cmd, accounts, func(w io.Writer) {
					fmt.Fprintln(w, "ID\tNAME\tSERVER\tUSER\tSYNC")
					for _, acc := range accounts {
						fmt.Fprintf(w, "%d\t%s\t%s://%s:%d\t%s\t%s\n",
							acc.ID, acc.Name, acc.Protocol, acc.Host, acc.Port, acc.Username, lastSync(acc.Active, acc.LastSync))
					}
				})
			})
		},
	}
	addOutputFlag(list)

	var req models.CreateEmailAccountRequest
	add := &cobra.Command{
		Use:   "add <name> <host>",
		Short: "Add an email account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Name, req.Host = args[0], args[1]
			return withApp(func(a *app.App) error {
				created, err := a.Client().CreateEmailAccount(cmd.Context(), req)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added email account %d\n", created.ID)
				return nil
			})
		},
	}
	add.Flags().IntVar(&req.Port, "port", 993, "server port")
	add.Flags().StringVar(&req.Protocol, "protocol", "IMAP", "mail protocol")
	add.Flags().StringVar(&req.Username, "username", "", "login name")
	add.Flags().StringVar(&req.Password, "password", "", "login password")

	cmd.AddCommand(list, add, newRemoveCommand("email account", func(a *app.App, cmd *cobra.Command, id int64) error {
		return a.Client().DeleteEmailAccount(cmd.Context(), id)
	}))

	return cmd
}

func newBankCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bank",
		Short: "Manage bank accounts and transactions",
	}

	list := &cobra.Command{
		Use:   "ls",
		Short: "List bank accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App) error {
				accounts, err := a.Client().ListBankAccounts(cmd.Context())
				if err != nil {
					return err
				}

				return render(cmd, accounts, func(w io.Writer) {
					fmt.Fprintln(w, "ID\tNAME\tIBAN\tBANK\tSYNC")
					for _, acc := range accounts {
						fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", acc.ID, acc.Name, acc.IBAN, acc.BankName, lastSync(acc.Active, acc.LastSync))
					}
				})
			})
		},
	}
	addOutputFlag(list)

	var req models.CreateBankAccountRequest
	add := &cobra.Command{
		Use:   "add <name> <iban>",
		Short: "Add a bank account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Name, req.IBAN = args[0], args[1]
			return withApp(func(a *app.App) error {
				created, err := a.Client().CreateBankAccount(cmd.Context(), req)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added bank account %d\n", created.ID)
				return nil
			})
		},
	}
	add.Flags().StringVar(&req.BankName, "bank", "", "bank name")
	add.Flags().StringVar(&req.APIProvider, "provider", "", "banking API provider")
	add.Flags().StringVar(&req.APIKey, "api-key", "", "banking API key")

	cmd.AddCommand(list, add, newRemoveCommand("bank account", func(a *app.App, cmd *cobra.Command, id int64) error {
		return a.Client().DeleteBankAccount(cmd.Context(), id)
	}), newTransactionsCommand())

	return cmd
}

func newTransactionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Manage bank transactions",
	}

	list := &cobra.Command{
		Use:   "ls <account-id>",
		Short: "List the transactions of a bank account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			return withApp(func(a *app.App) error {
				transactions, err := a.Client().ListTransactions(cmd.Context(), id)
				if err != nil {
					return err
				}

				return render(cmd, transactions, func(w io.Writer) {
					fmt.Fprintln(w, "ID\tDATE\tAMOUNT\tCOUNTERPARTY\tCATEGORY")
					for _, tx := range transactions {
						fmt.Fprintf(w, "%d\t%s\t%.2f\t%s\t%s\n", tx.ID, tx.Date, tx.Amount, tx.Counterparty, tx.Category)
					}
				})
			})
		},
	}
	addOutputFlag(list)

	var req models.CreateBankTransactionRequest
	add := &cobra.Command{
		Use:   "add <account-id> <YYYY-MM-DD> <amount> <counterparty>",
		Short: "Book a transaction",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if _, err := time.Parse(time.DateOnly, args[1]); err != nil {
				return fmt.Errorf("invalid date '%s'", args[1])
			}
			amount, err := cast.ToFloat64E(args[2])
			if err != nil {
				return fmt.Errorf("invalid amount '%s'", args[2])
			}
			req.Date, req.Amount, req.Counterparty = args[1], amount, args[3]

			return withApp(func(a *app.App) error {
				created, err := a.Client().CreateTransaction(cmd.Context(), id, req)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Booked transaction %d\n", created.ID)
				return nil
			})
		},
	}
	add.Flags().StringVar(&req.Description, "description", "", "booking text")
	add.Flags().StringVar(&req.Category, "category", "", "category")
	add.Flags().StringVar(&req.Reference, "reference", "", "payment reference")

	category := &cobra.Command{
		Use:   "category <transaction-id> <category>",
		Short: "Change the category of a transaction",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			return withApp(func(a *app.App) error {
				return a.Client().UpdateTransactionCategory(cmd.Context(), id, args[1])
			})
		},
	}

	cmd.AddCommand(list, add, category, newRemoveCommand("transaction", func(a *app.App, cmd *cobra.Command, id int64) error {
		return a.Client().DeleteTransaction(cmd.Context(), id)
	}))

	return cmd
}

func newRemoveCommand(kind string, remove func(a *app.App, cmd *cobra.Command, id int64) error) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a " + kind,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			return withApp(func(a *app.App) error {
				if err := remove(a, cmd, id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s %d\n", kind, id)
				return nil
			})
		},
	}
}

func lastSync(active bool, last *time.Time) string {
	switch {
	case !active:
		return "inactive"
	case last == nil:
		return "never"
	}
	return humanize.Time(*last)
}
