package templates

import (
	"fmt"

	"github.com/drshravan/phc-helper-api/models"
)

// RenderMonthlyReportEmail generates the HTML for the monthly delivery
// statistics email sent to the medical officer
func RenderMonthlyReportEmail(summary models.MonthlySummary) string {
	return fmt.Sprintf(`<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Strict//EN" "http://www.w3.org/TR/xhtml1/DTD/xhtml1-strict.dtd">
<html xmlns="http://www.w3.org/1999/xhtml">
<head>
  <meta http-equiv="Content-Type" content="text/html; charset=utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1, minimum-scale=1, maximum-scale=1">
  <title>ANC Monthly Report - %s</title>
  <style type="text/css">
    body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; margin: 0; padding: 0; background-color: #f4f6f8; }
    .container { max-width: 600px; margin: 0 auto; background-color: #ffffff; }
    .header { background: linear-gradient(135deg, #0e7490 0%%, #155e75 100%%); padding: 40px 30px; text-align: center; }
    .header h1 { color: #fff; margin: 0; font-size: 24px; font-weight: 700; }
    .content { padding: 40px 30px; color: #1f2937; line-height: 1.6; font-size: 15px; }
    .stats-table { width: 100%%; border-collapse: collapse; margin: 20px 0; }
    .stats-table td { padding: 10px 12px; border-bottom: 1px solid #e5e7eb; }
    .stats-table td:last-child { text-align: right; font-weight: 700; }
    .total-row td { background: #ecfeff; font-size: 16px; }
    .footer { padding: 30px; text-align: center; color: #6b7280; font-size: 12px; border-top: 1px solid #e5e7eb; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>ANC Report &mdash; %s</h1>
    </div>
    <div class="content">
      <p>Delivery statistics for %s:</p>
      <table class="stats-table">
        <tr class="total-row"><td>Registered mothers</td><td>%d</td></tr>
        <tr><td>Pending</td><td>%d</td></tr>
        <tr><td>Delivered</td><td>%d</td></tr>
        <tr><td>Aborted</td><td>%d</td></tr>
        <tr><td>Normal deliveries</td><td>%d</td></tr>
        <tr><td>LSCS deliveries</td><td>%d</td></tr>
        <tr><td>Government facility</td><td>%d</td></tr>
        <tr><td>Private facility</td><td>%d</td></tr>
        <tr><td>High risk</td><td>%d</td></tr>
      </table>
      <p>Figures are maintained transactionally with the register and audited nightly.</p>
    </div>
    <div class="footer">
      <p>PHC Helper &middot; automated monthly report</p>
    </div>
  </div>
</body>
</html>`,
		summary.Title, summary.Title, summary.Title,
		summary.Total, summary.Pending, summary.Delivered, summary.Aborted,
		summary.Normal, summary.LSCS, summary.Govt, summary.Pvt, summary.HighRisk)
}
