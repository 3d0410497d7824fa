package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/geocoder89/confirmhub/internal/config"
	"github.com/geocoder89/confirmhub/internal/dispatch"
	"github.com/geocoder89/confirmhub/internal/domain/confirmation"
	"github.com/geocoder89/confirmhub/internal/feedback"
	"github.com/geocoder89/confirmhub/internal/observability"
)

var (
	sendTo       string
	sendName     string
	sendTitle    string
	sendDate     string
	sendTime     string
	sendLocation string
	sendPrice    string
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send one confirmation email",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()
		log := observability.NewLogger(cfg.Env)

		d := dispatch.New(buildProvider(cfg, log), dispatch.Config{
			Organizer: cfg.OrganizerEmail,
			Log:       log,
			Reporter:  feedback.NewLogReporter(log),
		})

		in := confirmation.CreateRequest{
			Name:          sendName,
			Email:         sendTo,
			EventTitle:    sendTitle,
			EventDate:     sendDate,
			EventTime:     sendTime,
			EventLocation: sendLocation,
			EventPrice:    sendPrice,
		}

		ctx, cancel := config.WithTimeout(cfg.DispatchTimeout())
		defer cancel()

		res, err := d.Send(ctx, in)

		if err != nil {
			if reason := dispatch.ReasonOf(err); reason != "" {
				fmt.Fprintln(os.Stderr, dispatch.ReasonMessage(reason))
			} else {
				fmt.Fprintln(os.Stderr, err)
			}
			os.Exit(1)
		}

		fmt.Println(res.Message)

		if res.Outcome != dispatch.OutcomeSuccess {
			os.Exit(1)
		}

		fmt.Printf("confirmation number: %s\n", res.Request.ConfirmationNumber)
		fmt.Printf("registration date:   %s\n", res.Request.RegistrationDate)
	},
}

func init() {
	sendCmd.Flags().StringVar(&sendTo, "to", "", "recipient email address")
	sendCmd.Flags().StringVar(&sendName, "name", "", "recipient name")
	sendCmd.Flags().StringVar(&sendTitle, "event-title", "", "event title")
	sendCmd.Flags().StringVar(&sendDate, "event-date", "", "event date as shown to the attendee")
	sendCmd.Flags().StringVar(&sendTime, "event-time", "", "event start time")
	sendCmd.Flags().StringVar(&sendLocation, "event-location", "", "event location")
	sendCmd.Flags().StringVar(&sendPrice, "event-price", "", "ticket price")

	rootCmd.AddCommand(sendCmd)
}
